package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"i18nextract/internal/adapter"
	"i18nextract/internal/catalog"
	"i18nextract/internal/interpolation"
	"i18nextract/internal/translations"
)

// ErrNoLanguages is returned when no target language is configured.
var ErrNoLanguages = errors.New("lang must list at least one language")

// CustomRegex is one customRegex entry. With Pattern it adds a pattern;
// with Override it attaches a key transform to a named pattern. Replace/With
// rewrites keys by regex, Transform applies a named transform.
type CustomRegex struct {
	Pattern   string `koanf:"pattern"`
	Override  string `koanf:"override"`
	Replace   string `koanf:"replace"`
	With      string `koanf:"with"`
	Transform string `koanf:"transform"`
}

// Config holds one extraction run's configuration.
type Config struct {
	Lang        []string `koanf:"lang"`
	Src         []string `koanf:"src"`
	Dest        string   `koanf:"dest"`
	JSONSrc     []string `koanf:"jsonSrc"`
	JSONSrcName []string `koanf:"jsonSrcName"`

	Interpolation interpolation.Delimiters `koanf:"interpolation"`

	NullEmpty bool `koanf:"nullEmpty"`
	Namespace bool `koanf:"namespace"`
	SafeMode  bool `koanf:"safeMode"`
	KeyAsText bool `koanf:"keyAsText"`

	Prefix      string `koanf:"prefix"`
	Suffix      string `koanf:"suffix"`
	Source      string `koanf:"source"`
	DefaultLang string `koanf:"defaultLang"`

	CustomRegex      []CustomRegex            `koanf:"customRegex"`
	StringifyOptions adapter.StringifyOptions `koanf:"stringifyOptions"`

	Adapter     string `koanf:"adapter"`
	Workers     int    `koanf:"workers"`
	DatabaseURL string `koanf:"databaseUrl"`
}

// Default returns a configuration holding every default value.
func Default() *Config {
	return &Config{
		Dest:             ".",
		Interpolation:    interpolation.Default(),
		StringifyOptions: adapter.StringifyOptions{Space: 4},
		Adapter:          "json",
		Workers:          1,
	}
}

// applyDefaults fills values left blank by the file or the environment.
func applyDefaults(cfg *Config) {
	cfg.Lang = compact(cfg.Lang)
	cfg.Src = compact(cfg.Src)
	cfg.JSONSrc = compact(cfg.JSONSrc)
	cfg.JSONSrcName = compact(cfg.JSONSrcName)

	if cfg.Dest == "" {
		cfg.Dest = "."
	}
	if cfg.Adapter == "" {
		cfg.Adapter = "json"
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.StringifyOptions.Space < 0 {
		cfg.StringifyOptions.Space = 4
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	}
}

// Validate reports the first configuration error.
func (c *Config) Validate() error {
	if len(compact(c.Lang)) == 0 {
		return ErrNoLanguages
	}
	if err := c.Interpolation.Validate(); err != nil {
		return err
	}
	if _, err := adapter.New(c.Adapter); err != nil {
		return err
	}
	if _, err := c.Extensions(); err != nil {
		return err
	}
	return nil
}

// Extensions converts customRegex entries into catalog extensions, in order.
func (c *Config) Extensions() ([]catalog.Extension, error) {
	var exts []catalog.Extension
	additional := 0
	for i, cr := range c.CustomRegex {
		target := cr.Override
		switch {
		case cr.Pattern != "" && cr.Override != "":
			return nil, fmt.Errorf("customRegex[%d]: pattern and override are exclusive", i)
		case cr.Pattern != "":
			exts = append(exts, catalog.Additional{Expr: cr.Pattern})
			target = fmt.Sprintf("others_%d", additional)
			additional++
		case cr.Override == "":
			return nil, fmt.Errorf("customRegex[%d]: pattern or override is required", i)
		}

		fns, err := cr.transforms()
		if err != nil {
			return nil, fmt.Errorf("customRegex[%d]: %w", i, err)
		}
		if cr.Pattern == "" && len(fns) == 0 {
			return nil, fmt.Errorf("customRegex[%d]: override %s needs replace or transform", i, cr.Override)
		}
		for _, fn := range fns {
			exts = append(exts, catalog.Override{Pattern: target, Transform: fn})
		}
	}
	return exts, nil
}

func (cr CustomRegex) transforms() ([]catalog.Transform, error) {
	var fns []catalog.Transform
	if cr.Replace != "" {
		fn, err := catalog.Rewrite(cr.Replace, cr.With)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	if cr.Transform != "" {
		fn, err := catalog.NamedTransform(cr.Transform)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

// AdapterParams returns the parameters handed to the output adapter.
func (c *Config) AdapterParams() adapter.Params {
	return adapter.Params{
		Lang:        c.Lang,
		Dest:        c.Dest,
		Prefix:      c.Prefix,
		Suffix:      c.Suffix,
		Source:      c.Source,
		DefaultLang: c.DefaultLang,
		Stringify:   c.StringifyOptions,
		DatabaseURL: c.DatabaseURL,
	}
}

// TranslationParams returns the merge and rendering parameters.
func (c *Config) TranslationParams() translations.Params {
	return translations.Params{
		SafeMode:  c.SafeMode,
		Tree:      c.Namespace,
		NullEmpty: c.NullEmpty,
	}
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
