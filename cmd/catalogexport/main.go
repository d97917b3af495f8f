package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/niksmo/storefront/internal/adapter/catalogfile"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

const (
	outputFlag = "output"
	sizeFlag   = "size"
	seedFlag   = "seed"
)

type flagValues struct {
	output string
	size   int
	seed   uint64
}

func main() {
	ctx, cancel := sigctx.NotifyContext()
	defer cancel()

	fv := getFlagsValues()
	validateFlags(fv)
	exportCatalog(ctx, fv)
}

func getFlagsValues() flagValues {
	output := pflag.StringP(outputFlag, "o", "", "catalog file to write")
	size := pflag.IntP(sizeFlag, "n", catalog.DefaultMockSize, "number of products")
	seed := pflag.Uint64P(seedFlag, "s", 1, "mock catalog seed")
	pflag.Parse()
	return flagValues{*output, *size, *seed}
}

func validateFlags(fv flagValues) {
	var errs []error

	if fv.output == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", outputFlag))
	}

	if fv.size < 0 {
		errs = append(errs, fmt.Errorf("--%s flag: must not be negative", sizeFlag))
	}

	if len(errs) != 0 {
		slog.Error("invalid args", "err", errors.Join(errs...))
		fallDown()
	}
}

func exportCatalog(ctx context.Context, fv flagValues) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	ps := catalog.MockProducts(fv.size, fv.seed, now)

	repo := catalogfile.NewRepository(afero.NewOsFs(), fv.output)
	if err := repo.WriteProducts(ctx, ps); err != nil {
		slog.Error("failed to export catalog", "err", err)
		fallDown()
	}
}

func fallDown() {
	os.Exit(2)
}
