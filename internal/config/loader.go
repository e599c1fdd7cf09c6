package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "I18NEXTRACT_"

// envKeys maps the normalized form of an environment name (lowercase, no
// underscores) to its configuration key.
var envKeys = map[string]string{}

// listKeys are split on commas when set from the environment.
var listKeys = map[string]bool{
	"lang":        true,
	"src":         true,
	"jsonSrc":     true,
	"jsonSrcName": true,
}

func init() {
	for _, key := range []string{
		"lang", "src", "dest", "jsonSrc", "jsonSrcName",
		"interpolation.startDelimiter", "interpolation.endDelimiter",
		"nullEmpty", "namespace", "safeMode", "keyAsText",
		"prefix", "suffix", "source", "defaultLang",
		"stringifyOptions.space", "adapter", "workers", "databaseUrl",
	} {
		envKeys[normalize(key)] = key
	}
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, ".", "")
}

// Load reads configuration from defaults, then the YAML file at path (if
// non-empty), then I18NEXTRACT_* environment variables. A .env file in the
// working directory is loaded first.
//
// The result is not validated, so that command-line flags can still be
// applied; call Validate before using it.
//
// Environment mapping ignores underscores and case:
//
//	I18NEXTRACT_LANG=en_US,fr_FR           -> lang
//	I18NEXTRACT_DEFAULT_LANG=en_US         -> defaultLang
//	I18NEXTRACT_INTERPOLATION_START_DELIMITER=[[ -> interpolation.startDelimiter
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(cfg)

	log.Debug().
		Str("file", path).
		Strs("lang", cfg.Lang).
		Strs("src", cfg.Src).
		Str("adapter", cfg.Adapter).
		Msg("Loaded configuration")
	return cfg, nil
}

func envValue(name, value string) (string, any) {
	key, ok := envKeys[normalize(strings.TrimPrefix(name, EnvPrefix))]
	if !ok {
		return "", nil
	}
	if listKeys[key] {
		return key, strings.Split(value, ",")
	}
	return key, value
}
