package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "STOREFRONT"
	configFileEnvName = envPrefix + "_CONFIG_FILE"
	configFlag        = "config"
)

type catalog struct {
	File     string `mapstructure:"file"`
	MockSize int    `mapstructure:"mock_size"`
	Seed     uint64 `mapstructure:"seed"`
}

type pageSizes struct {
	Two   int `mapstructure:"two"`
	Three int `mapstructure:"three"`
	Four  int `mapstructure:"four"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	Catalog        catalog       `mapstructure:"catalog"`
	PageSizes      pageSizes     `mapstructure:"page_sizes"`
	FilterDebounce time.Duration `mapstructure:"filter_debounce"`
}

// DomainPageSizes converts the configured sizes for the core.
func (c Config) DomainPageSizes() domain.PageSizes {
	return domain.PageSizes{
		Two:   c.PageSizes.Two,
		Three: c.PageSizes.Three,
		Four:  c.PageSizes.Four,
	}
}

// Flags returns a flag set with the options understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP(configFlag, "c", "", "config file")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("catalog-file", "", "avro catalog snapshot, mock catalog when empty")
	return fs
}

// Load builds the configuration from defaults, an optional config file,
// STOREFRONT_* environment variables and the parsed flags in fs, in
// increasing priority.
func Load(fs *pflag.FlagSet) (Config, error) {
	const op = "config.Load"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if path := configFilepath(fs); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := domain.DefaultPageSizes()
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.mock_size", 27)
	v.SetDefault("catalog.seed", 1)
	v.SetDefault("page_sizes.two", def.Two)
	v.SetDefault("page_sizes.three", def.Three)
	v.SetDefault("page_sizes.four", def.Four)
	v.SetDefault("filter_debounce", "500ms")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	binds := map[string]string{
		"log_level":    "log-level",
		"catalog.file": "catalog-file",
	}
	for key, name := range binds {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

func configFilepath(fs *pflag.FlagSet) string {
	if fs != nil {
		if f := fs.Lookup(configFlag); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return ""
}

func (c Config) validate() error {
	var errs []error
	if c.Catalog.MockSize < 0 {
		errs = append(errs, errors.New("catalog.mock_size: negative"))
	}
	if c.PageSizes.Two < 1 || c.PageSizes.Three < 1 || c.PageSizes.Four < 1 {
		errs = append(errs, errors.New("page_sizes: must be positive"))
	}
	if c.FilterDebounce < 0 {
		errs = append(errs, errors.New("filter_debounce: negative"))
	}
	return errors.Join(errs...)
}

func (c Config) Print(w io.Writer) {
	tamplate := `
	General:
	LogLevel=%q
	FilterDebounce=%q

	Catalog:
	File=%q
	MockSize=%d
	Seed=%d

	PageSizes:
	Two=%d
	Three=%d
	Four=%d

`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.FilterDebounce,
		c.Catalog.File,
		c.Catalog.MockSize,
		c.Catalog.Seed,
		c.PageSizes.Two,
		c.PageSizes.Three,
		c.PageSizes.Four,
	)
}
