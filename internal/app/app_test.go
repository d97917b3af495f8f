package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalogfile"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	cfg.FilterDebounce = 0
	return cfg
}

func runApp(t *testing.T, app *App) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	app.ctx = ctx
	app.Run(cancel)

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}

	closeCtx, closeCancel := context.WithTimeout(t.Context(), time.Second)
	defer closeCancel()
	app.Close(closeCtx)
}

func TestAppMockCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.MockSize = 5

	var out strings.Builder
	app := New(t.Context(), cfg, strings.NewReader("list\n"), &out)
	assert.Equal(t, 5, app.catalog.Len())

	runApp(t, app)

	var r struct {
		Cmd  string `json:"cmd"`
		OK   bool   `json:"ok"`
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &r))
	assert.Equal(t, "list", r.Cmd)
	assert.True(t, r.OK)
	assert.Equal(t, 5, r.Data.Total)
}

func TestAppCatalogFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	ps := catalog.MockProducts(4, 3, now)
	require.NoError(t,
		catalogfile.NewRepository(fs, "/data/catalog.avro").WriteProducts(t.Context(), ps),
	)

	cfg := testConfig(t)
	cfg.Catalog.File = "/data/catalog.avro"

	var out strings.Builder
	app := New(t.Context(), cfg, strings.NewReader("fav "+ps[0].ProductID+"\n"), &out, FsOpt(fs))
	assert.Equal(t, 4, app.catalog.Len())

	runApp(t, app)
	assert.Contains(t, out.String(), `"favorite":true`)
}

func TestAppMissingCatalogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.File = "/absent.avro"

	assert.Panics(t, func() {
		New(t.Context(), cfg, strings.NewReader(""), &strings.Builder{}, FsOpt(afero.NewMemMapFs()))
	})
}
