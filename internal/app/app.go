package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalogfile"
	"github.com/niksmo/storefront/internal/adapter/shell"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/spf13/afero"
)

type App struct {
	ctx     context.Context
	cfg     config.Config
	fs      afero.Fs
	in      io.Reader
	out     io.Writer
	catalog *catalog.Store
	service service.Service
	shell   shell.Shell
	done    chan struct{}
}

type Option func(*App)

// FsOpt replaces the file system the catalog snapshot is read from.
func FsOpt(fs afero.Fs) Option {
	return func(app *App) {
		app.fs = fs
	}
}

// New wires the application. It panics if the catalog cannot be loaded.
func New(
	ctx context.Context,
	cfg config.Config,
	in io.Reader,
	out io.Writer,
	opts ...Option,
) *App {
	app := &App{
		ctx:  ctx,
		cfg:  cfg,
		fs:   afero.NewOsFs(),
		in:   in,
		out:  out,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(app)
	}

	app.initLogger()
	app.initCatalog()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	ps, err := app.loadProducts()
	if err != nil {
		app.fallDown(op, err)
	}

	store, err := catalog.NewStore(ps)
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = store
}

func (app *App) loadProducts() ([]domain.Product, error) {
	c := app.cfg.Catalog
	if c.File == "" {
		now := time.Now().UTC().Truncate(time.Millisecond)
		return catalog.MockProducts(c.MockSize, c.Seed, now), nil
	}
	repo := catalogfile.NewRepository(app.fs, c.File)
	return repo.ReadProducts(app.ctx)
}

func (app *App) initCoreService() {
	app.service = service.New(app.catalog, app.cfg.DomainPageSizes())
}

func (app *App) initInboundAdapters() {
	app.shell = shell.New(app.service, app.in, app.out, app.cfg.FilterDebounce)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go func() {
		defer close(app.done)
		app.shell.Run(app.ctx, stopFn)
	}()

	slog.Info("application is running", "nProducts", app.catalog.Len())
}

func (app *App) Close(ctx context.Context) {
	const op = "App.Close"
	log := slog.With("op", op)

	log.Info("application is closing...")

	select {
	case <-app.done:
	case <-ctx.Done():
		log.Warn("shell did not stop in time", "err", ctx.Err())
		return
	}

	log.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
