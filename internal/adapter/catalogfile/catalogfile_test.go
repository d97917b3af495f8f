package catalogfile

import (
	"context"
	"testing"
	"time"

	"github.com/hamba/avro/v2/ocf"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewRepository(fs, "/catalog.avro")

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	want := catalog.MockProducts(catalog.DefaultMockSize, 11, now)

	require.NoError(t, repo.WriteProducts(t.Context(), want))

	got, err := repo.ReadProducts(t.Context())
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.ProductID, g.ProductID)
		assert.Equal(t, w.Name, g.Name)
		assert.True(t, w.Price.Equal(g.Price), "price %s != %s", w.Price, g.Price)
		require.NotNil(t, g.OriginalPrice)
		assert.True(t, w.OriginalPrice.Equal(*g.OriginalPrice))
		assert.Equal(t, w.Category, g.Category)
		assert.Equal(t, w.SubCategory, g.SubCategory)
		assert.Equal(t, w.Images, g.Images)
		assert.Equal(t, w.Tags, g.Tags)
		assert.Equal(t, w.Stock, g.Stock)
		assert.Equal(t, w.Rating, g.Rating)
		assert.Equal(t, w.Reviews, g.Reviews)
		assert.Equal(t, w.Specifications, g.Specifications)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt))
	}

	_, err = catalog.NewStore(got)
	assert.NoError(t, err)
}

func TestRepositoryErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		repo := NewRepository(afero.NewMemMapFs(), "/missing.avro")
		_, err := repo.ReadProducts(t.Context())
		assert.Error(t, err)
	})

	t.Run("NotAvro", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bad.avro", []byte("not avro"), 0o644))
		_, err := NewRepository(fs, "/bad.avro").ReadProducts(t.Context())
		assert.Error(t, err)
	})

	t.Run("OtherSchema", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		f, err := fs.Create("/other.avro")
		require.NoError(t, err)

		enc, err := ocf.NewEncoder(
			`{"type":"record","name":"Other","fields":[{"name":"x","type":"int"}]}`, f,
		)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(struct {
			X int `avro:"x"`
		}{1}))
		require.NoError(t, enc.Close())
		require.NoError(t, f.Close())

		_, err = NewRepository(fs, "/other.avro").ReadProducts(t.Context())
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		repo := NewRepository(afero.NewMemMapFs(), "/c.avro")
		err := repo.WriteProducts(ctx, []domain.Product{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
