// Package config loads the run configuration from a config file, .env
// files and environment variables.
//
// Precedence, highest first: command-line overrides, environment
// variables (TAGSYNC_*, plus DT_API_URL and DT_API_TOKEN), .env.local,
// .env, the config file, defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tagsync"
	"github.com/agentstation/tagsync/pkg/constants"
	"github.com/agentstation/tagsync/pkg/errors"
)

// DefaultConfigName is the base name searched for when no file is given.
const DefaultConfigName = "tagsync"

// Options controls where configuration is read from.
type Options struct {
	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string
	// SearchPaths are searched for tagsync.{yaml,yml,json} when ConfigFile
	// is empty. Defaults to the working directory and $HOME.
	SearchPaths []string
	// EnvFiles are loaded in order; earlier files win. Defaults to
	// .env.local then .env. Missing files are ignored.
	EnvFiles []string
	// Overrides are applied last.
	Overrides Overrides
}

// Overrides carries command-line values. Nil fields are not set.
type Overrides struct {
	URL        *string
	CSVFile    *string
	CreateTags *bool
	DeleteTags *bool
}

// Load builds the run configuration. It returns the config and the path of
// the config file used, if any. The result is not validated.
func Load(opts Options) (tagsync.Config, string, error) {
	loadEnvFiles(opts.EnvFiles)

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return tagsync.Config{}, "", err
	}

	if err := readConfigFile(v, opts); err != nil {
		return tagsync.Config{}, "", err
	}

	// Decode into a zero value: mapstructure reuses existing slices, so
	// defaults come from viper instead.
	var cfg tagsync.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return tagsync.Config{}, v.ConfigFileUsed(), errors.NewConfigError("config", "cannot decode configuration", err)
	}
	cfg.Token = expandRefs(cfg.Token)
	cfg.URL = strings.TrimSpace(expandRefs(cfg.URL))
	opts.Overrides.Apply(&cfg)

	return cfg, v.ConfigFileUsed(), nil
}

// Apply sets every non-nil override on cfg.
func (o Overrides) Apply(cfg *tagsync.Config) {
	if o.URL != nil {
		cfg.URL = *o.URL
	}
	if o.CSVFile != nil {
		cfg.CSVFile = *o.CSVFile
	}
	if o.CreateTags != nil {
		cfg.CreateTags = *o.CreateTags
	}
	if o.DeleteTags != nil {
		cfg.DeleteTags = *o.DeleteTags
	}
}

// setDefaults registers every key so AutomaticEnv can see it on Unmarshal.
func setDefaults(v *viper.Viper) {
	d := tagsync.DefaultConfig()
	v.SetDefault("url", "")
	v.SetDefault("token", "")
	v.SetDefault("csv_file", "")
	v.SetDefault("create_tags", d.CreateTags)
	v.SetDefault("delete_tags", d.DeleteTags)
	v.SetDefault("identity_column", d.IdentityColumn)
	v.SetDefault("entity_type", d.EntityType)
	v.SetDefault("tag_prefix", d.TagPrefix)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("empty_values", d.EmptyValues)
	v.SetDefault("auth_scheme", d.AuthScheme)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("timeout", d.Timeout)
}

// bindAliases lets the platform's conventional variable names stand in
// for the prefixed ones.
func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		"url":   {constants.EnvPrefix + "_URL", "DT_API_URL"},
		"token": {constants.EnvPrefix + "_TOKEN", "DT_API_TOKEN"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return errors.NewConfigError(key, "cannot bind environment", err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "cannot read "+opts.ConfigFile, err)
		}
		return nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{"."}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home)
		}
	}
	for _, p := range paths {
		for _, ext := range []string{"yaml", "yml", "json"} {
			file := filepath.Join(p, DefaultConfigName+"."+ext)
			if _, err := os.Stat(file); err != nil {
				continue
			}
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return errors.NewConfigError("config", "cannot read "+file, err)
			}
			return nil
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overrides a variable that is already set, so earlier files win.
func loadEnvFiles(files []string) {
	if files == nil {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// expandRefs resolves ${VAR} references, e.g. token: ${DT_API_TOKEN}.
func expandRefs(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
