package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/git-eq/internal/constants"
	"github.com/mrz1836/git-eq/internal/errors"
)

// newViperInstance creates a new Viper instance with the GITEQ_ environment
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults mirrors DefaultConfig. Keys must match the mapstructure tags.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("git.binary", d.Git.Binary)
	v.SetDefault("lock.wait", d.Lock.Wait)
	v.SetDefault("lock.debounce", d.Lock.Debounce.String())
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from the environment and the global config file.
// A missing config file is not an error.
func Load(ctx context.Context) (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		// No home directory: env and defaults still apply.
		path = ""
	}
	return LoadFromPath(ctx, path)
}

// LoadFromPath loads configuration using path as the config file.
// An empty path or a path that does not exist skips the file layer.
func LoadFromPath(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("file", v.ConfigFileUsed()).
		Str("git.binary", cfg.Git.Binary).
		Bool("lock.wait", cfg.Lock.Wait).
		Dur("lock.debounce", cfg.Lock.Debounce).
		Msg("configuration loaded")

	return cfg, nil
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
