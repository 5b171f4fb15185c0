//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/guttosm/packaging-service/internal/testutil"
)

func TestNewMongoDB_Integration(t *testing.T) {
	ctx := context.Background()
	db := newTestMongoDB(t)

	assert.Equal(t, packageTypesCollection, db.PackageTypes.Name())
	assert.Equal(t, logsCollection, db.Logs.Name())
	assert.NoError(t, db.HealthCheck(ctx))

	t.Run("creates the unique active name index", func(t *testing.T) {
		specs, err := db.PackageTypes.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)

		var found bool
		for _, spec := range specs {
			if spec.Name == "location_name_active_unique" {
				found = true
				require.NotNil(t, spec.Unique)
				assert.True(t, *spec.Unique)
			}
		}
		assert.True(t, found)
	})

	t.Run("is idempotent", func(t *testing.T) {
		again, err := NewMongoDB(testutil.GetSharedContainerURI(), db.Database.Name())
		require.NoError(t, err)
		assert.NoError(t, again.Close(ctx))
	})
}

func TestNewMongoDB_UnreachableServer(t *testing.T) {
	cfg := DefaultMongoConfig()
	cfg.ConnectTimeout = 500 * time.Millisecond
	cfg.ServerSelectionTimeout = 500 * time.Millisecond

	db, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", "unreachable", cfg)

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "ping mongodb")
}

func TestMongoDB_SetLogsTTL_Integration(t *testing.T) {
	ctx := context.Background()
	db := newTestMongoDB(t)

	ttl, err := db.LogsTTL(ctx)
	require.NoError(t, err)
	assert.Zero(t, ttl, "logs do not expire until a TTL is set")

	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))
	ttl, err = db.LogsTTL(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, ttl)

	require.NoError(t, db.SetLogsTTL(ctx, 7*24*time.Hour), "changing the TTL modifies the index in place")
	ttl, err = db.LogsTTL(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)

	require.NoError(t, db.SetLogsTTL(ctx, 0))
	ttl, err = db.LogsTTL(ctx)
	require.NoError(t, err)
	assert.Zero(t, ttl)

	assert.NoError(t, db.SetLogsTTL(ctx, 0), "removing a missing TTL is a no-op")
}

func TestMongoDB_HealthCheck_AfterClose(t *testing.T) {
	ctx := context.Background()
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)

	_, err = db.Logs.InsertOne(ctx, bson.M{"message": "before close"})
	require.NoError(t, err)
	require.NoError(t, db.Database.Drop(ctx))
	require.NoError(t, db.Close(ctx))

	assert.Error(t, db.HealthCheck(ctx))
}
