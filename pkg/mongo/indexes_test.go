package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func resolveIndexOptions(t *testing.T, model mongo.IndexModel) options.IndexOptions {
	t.Helper()

	var opts options.IndexOptions
	if model.Options == nil {
		return opts
	}
	for _, set := range model.Options.List() {
		require.NoError(t, set(&opts))
	}
	return opts
}

func findIndex(t *testing.T, collection string, keys bson.D) mongo.IndexModel {
	t.Helper()

	for _, idx := range requiredIndexes {
		if idx.CollectionName == collection && assert.ObjectsAreEqual(keys, idx.IndexModel.Keys) {
			return idx.IndexModel
		}
	}
	require.Failf(t, "index not declared", "%s %v", collection, keys)
	return mongo.IndexModel{}
}

func TestCartIndexes(t *testing.T) {
	tests := []struct {
		name       string
		keys       bson.D
		unique     bool
		expireSecs *int32
	}{
		{
			name:   "one cart per session",
			keys:   bson.D{{Key: "sessionId", Value: 1}},
			unique: true,
		},
		{
			name:       "idle carts expire after seven days",
			keys:       bson.D{{Key: "updatedAt", Value: 1}},
			expireSecs: func() *int32 { v := int32(604800); return &v }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := resolveIndexOptions(t, findIndex(t, CartsCollection, tt.keys))

			if tt.unique {
				require.NotNil(t, opts.Unique)
				assert.True(t, *opts.Unique)
			} else {
				assert.True(t, opts.Unique == nil || !*opts.Unique)
			}

			if tt.expireSecs != nil {
				require.NotNil(t, opts.ExpireAfterSeconds)
				assert.Equal(t, *tt.expireSecs, *opts.ExpireAfterSeconds)
			} else {
				assert.Nil(t, opts.ExpireAfterSeconds)
			}
		})
	}
}

func TestProductIndexesCoverListingFilters(t *testing.T) {
	for _, field := range []string{"category", "price"} {
		findIndex(t, ProductsCollection, bson.D{{Key: field, Value: 1}})
	}

	text := findIndex(t, ProductsCollection, bson.D{
		{Key: "name", Value: "text"},
		{Key: "description", Value: "text"},
	})
	opts := resolveIndexOptions(t, text)
	require.NotNil(t, opts.Weights)
}
