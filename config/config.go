// Package config holds the weft CLI configuration: the output profile
// applied when rendering a document. Configuration is read with viper
// (file, environment, defaults) and persisted as TOML.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
	"github.com/teranos/weft/output"
)

// Config is the rendering profile.
type Config struct {
	// Format selects the terminal serializer: xml, xhtml, html or text.
	Format string `mapstructure:"format" toml:"format"`
	// Doctype names a well-known DOCTYPE to prepend, or is empty. See
	// DocTypeByName for the recognized names.
	Doctype string `mapstructure:"doctype" toml:"doctype"`
	// StripWhitespace enables the whitespace collapsing filter.
	StripWhitespace bool `mapstructure:"strip_whitespace" toml:"strip_whitespace"`
	// Prefixes maps namespace URIs to preferred prefixes.
	Prefixes map[string]string `mapstructure:"prefixes" toml:"prefixes,omitempty"`
}

// SetDefaults installs the default profile on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "xml")
	v.SetDefault("doctype", "")
	v.SetDefault("strip_whitespace", true)
}

// Load reads configuration from the given file (optional) plus WEFT_*
// environment variables, falling back to defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WEFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// Save writes the configuration as TOML, creating parent directories as
// needed.
func (c *Config) Save(configPath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating config directory %s", dir)
		}
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing config file %s", configPath)
	}
	return nil
}

// Options converts the profile into serializer options.
func (c *Config) Options() (output.Options, error) {
	opts := output.Options{
		StripWhitespace:   c.StripWhitespace,
		NamespacePrefixes: c.Prefixes,
	}
	if c.Doctype != "" {
		dt, ok := DocTypeByName(c.Doctype)
		if !ok {
			return opts, errors.WithHint(
				errors.Newf("unknown doctype %q", c.Doctype),
				"known names: html, html-transitional, xhtml, xhtml-transitional")
		}
		opts.Doctype = &dt
	}
	return opts, nil
}

// DocTypeByName resolves the well-known DOCTYPE names used in
// configuration files.
func DocTypeByName(name string) (event.DocType, bool) {
	switch strings.ToLower(name) {
	case "html", "html-strict":
		return output.DocTypeHTMLStrict, true
	case "html-transitional":
		return output.DocTypeHTMLTransitional, true
	case "xhtml", "xhtml-strict":
		return output.DocTypeXHTMLStrict, true
	case "xhtml-transitional":
		return output.DocTypeXHTMLTransitional, true
	default:
		return event.DocType{}, false
	}
}
