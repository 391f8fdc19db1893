package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coffer/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyClaimRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	configRepo := NewGuildConfigRepository(testDB.DB)
	repo := NewDailyClaimRepository(testDB.DB)
	ctx := context.Background()

	_, err := configRepo.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	t.Run("first access creates a zero row", func(t *testing.T) {
		claim, err := repo.GetOrCreate(ctx, 100, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(100), claim.GuildID)
		assert.Equal(t, int64(1), claim.UserID)
		assert.Equal(t, int64(0), claim.LastClaim)
	})

	t.Run("second access keeps the recorded claim", func(t *testing.T) {
		now := time.Now().Unix()
		_, err := repo.GetOrCreate(ctx, 100, 2)
		require.NoError(t, err)
		require.NoError(t, repo.SetLastClaim(ctx, 100, 2, now))

		claim, err := repo.GetOrCreate(ctx, 100, 2)
		require.NoError(t, err)
		assert.Equal(t, now, claim.LastClaim)
	})
}

func TestDailyClaimRepository_SetLastClaim(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	configRepo := NewGuildConfigRepository(testDB.DB)
	repo := NewDailyClaimRepository(testDB.DB)
	ctx := context.Background()

	_, err := configRepo.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	t.Run("missing row is an error", func(t *testing.T) {
		err := repo.SetLastClaim(ctx, 100, 999, time.Now().Unix())
		assert.Error(t, err)
	})

	t.Run("overwrites the previous claim", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 100, 1)
		require.NoError(t, err)

		require.NoError(t, repo.SetLastClaim(ctx, 100, 1, 1000))
		require.NoError(t, repo.SetLastClaim(ctx, 100, 1, 2000))

		claim, err := repo.GetOrCreate(ctx, 100, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), claim.LastClaim)
	})
}

func TestDailyClaimRepository_ConcurrentClaims(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	configRepo := NewGuildConfigRepository(testDB.DB)
	repo := NewDailyClaimRepository(testDB.DB)
	ctx := context.Background()

	_, err := configRepo.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	// Ten workers race the same claim row through lock, check, set. The
	// FOR UPDATE lock serializes them, so after the first commit every
	// later worker sees a fresh claim and backs off.
	const (
		workers  = 10
		cooldown = int64(86400)
	)
	now := time.Now().Unix()
	var claimed int32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := testDB.DB.Pool.Begin(ctx)
			if err != nil {
				errs <- err
				return
			}
			defer tx.Rollback(ctx)

			txRepo := newDailyClaimRepositoryWithTx(tx)
			claim, err := txRepo.GetOrCreateForUpdate(ctx, 100, 1)
			if err != nil {
				errs <- err
				return
			}
			if now-claim.LastClaim >= cooldown {
				if err := txRepo.SetLastClaim(ctx, 100, 1, now); err != nil {
					errs <- err
					return
				}
				atomic.AddInt32(&claimed, 1)
			}
			errs <- tx.Commit(ctx)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), claimed)

	claim, err := repo.GetOrCreate(ctx, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, now, claim.LastClaim)
}

func TestDailyClaimRepository_CascadeDelete(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	configRepo := NewGuildConfigRepository(testDB.DB)
	repo := NewDailyClaimRepository(testDB.DB)
	ctx := context.Background()

	_, err := configRepo.GetOrCreate(ctx, 100)
	require.NoError(t, err)
	_, err = repo.GetOrCreate(ctx, 100, 1)
	require.NoError(t, err)
	require.NoError(t, repo.SetLastClaim(ctx, 100, 1, 5000))

	_, err = testDB.DB.Pool.Exec(ctx, `DELETE FROM guild_configs WHERE guild_id = $1`, 100)
	require.NoError(t, err)

	// The lazily created row is gone, so the next access reseeds at zero.
	_, err = configRepo.GetOrCreate(ctx, 100)
	require.NoError(t, err)
	claim, err := repo.GetOrCreate(ctx, 100, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), claim.LastClaim)
}
