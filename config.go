package tagsync

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/agentstation/tagsync/internal/tagapi"
	"github.com/agentstation/tagsync/pkg/constants"
	"github.com/agentstation/tagsync/pkg/errors"
	"github.com/agentstation/tagsync/pkg/tagging"
)

// Config is the run configuration. It is loaded once before the pipeline
// starts and never changes during a run.
type Config struct {
	URL        string `mapstructure:"url" json:"url" yaml:"url"`
	Token      string `mapstructure:"token" json:"-" yaml:"-"`
	CSVFile    string `mapstructure:"csv_file" json:"csv_file" yaml:"csv_file"`
	CreateTags bool   `mapstructure:"create_tags" json:"create_tags" yaml:"create_tags"`
	DeleteTags bool   `mapstructure:"delete_tags" json:"delete_tags" yaml:"delete_tags"`

	IdentityColumn string                 `mapstructure:"identity_column" json:"identity_column" yaml:"identity_column"`
	EntityType     string                 `mapstructure:"entity_type" json:"entity_type" yaml:"entity_type"`
	TagPrefix      string                 `mapstructure:"tag_prefix" json:"tag_prefix" yaml:"tag_prefix"`
	Delimiter      string                 `mapstructure:"delimiter" json:"delimiter" yaml:"delimiter"`
	EmptyValues    []string               `mapstructure:"empty_values" json:"empty_values" yaml:"empty_values"`
	Mapping        []tagging.MappingEntry `mapstructure:"mapping" json:"mapping" yaml:"mapping"`

	AuthScheme string        `mapstructure:"auth_scheme" json:"auth_scheme" yaml:"auth_scheme"`
	RateLimit  float64       `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		CreateTags:     true,
		DeleteTags:     false,
		IdentityColumn: constants.DefaultIdentityColumn,
		EntityType:     constants.DefaultEntityType,
		TagPrefix:      constants.DefaultTagPrefix,
		Delimiter:      constants.DefaultDelimiter,
		EmptyValues:    append([]string(nil), constants.DefaultEmptyValues...),
		AuthScheme:     constants.DefaultAuthScheme,
		RateLimit:      constants.DefaultRateLimit,
		Timeout:        constants.DefaultHTTPTimeout,
	}
}

// Validate checks the configuration. Plan-only runs skip the remote
// settings (url and token).
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateForPlan checks only what building the desired state needs.
func (c *Config) ValidateForPlan() error {
	return c.validate(false)
}

func (c *Config) validate(remote bool) error {
	if remote {
		if strings.TrimSpace(c.URL) == "" {
			return errors.NewConfigError("url", "is required", nil)
		}
		if _, err := tagapi.TagsEndpoint(c.URL); err != nil {
			return errors.NewConfigError("url", "is not a valid environment URL", err)
		}
		if strings.TrimSpace(c.Token) == "" {
			return errors.NewConfigError("token", "is required", nil)
		}
		if c.RateLimit < 0 {
			return errors.NewConfigError("rate_limit", "must not be negative", nil)
		}
		if c.Timeout < 0 {
			return errors.NewConfigError("timeout", "must not be negative", nil)
		}
	}
	if strings.TrimSpace(c.CSVFile) == "" {
		return errors.NewConfigError("csv_file", "is required", nil)
	}
	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		return errors.NewConfigError("delimiter", fmt.Sprintf("must be a single character, got %q", c.Delimiter), nil)
	}
	if _, err := tagging.NewColumnMapping(c.Mapping); err != nil {
		return errors.NewConfigError("mapping", "is invalid", err)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, defaulting to a comma.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// RedactedToken returns the token with all but its public prefix hidden.
// Platform tokens look like "dt0c01.<public>.<secret>".
func (c *Config) RedactedToken() string {
	if c.Token == "" {
		return ""
	}
	if i := strings.LastIndex(c.Token, "."); i > 0 {
		return c.Token[:i] + ".****"
	}
	return "****"
}

// MarshalZerologObject logs the configuration with the token redacted.
func (c Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("url", c.URL).
		Str("token", c.RedactedToken()).
		Str("csv_file", c.CSVFile).
		Bool("create_tags", c.CreateTags).
		Bool("delete_tags", c.DeleteTags).
		Str("identity_column", c.IdentityColumn).
		Str("entity_type", c.EntityType).
		Str("tag_prefix", c.TagPrefix).
		Str("delimiter", c.Delimiter).
		Strs("empty_values", c.EmptyValues).
		Float64("rate_limit", c.RateLimit).
		Dur("timeout", c.Timeout)
}
