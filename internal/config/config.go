package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	HTTP struct {
		Addr            string        `koanf:"addr"`
		ReadTimeout     time.Duration `koanf:"readTimeout"`
		WriteTimeout    time.Duration `koanf:"writeTimeout"`
		ShutdownTimeout time.Duration `koanf:"shutdownTimeout"`
	} `koanf:"http"`

	Database struct {
		// DSN empty means run on the in-memory store (dev mode).
		DSN           string `koanf:"dsn"`
		RunMigrations bool   `koanf:"runMigrations"`
	} `koanf:"database"`

	Rabbit struct {
		// URL empty disables order announcements.
		URL string `koanf:"url"`
	} `koanf:"rabbit"`

	Admin struct {
		// Key is the shared secret compared against X-Admin-Key.
		Key string `koanf:"key"`
	} `koanf:"admin"`

	Assistant struct {
		// APIKey empty disables the assistant; chat then always answers
		// with the fallback message.
		APIKey string `koanf:"apiKey"`
		Model  string `koanf:"model"`
	} `koanf:"assistant"`
}

func defaults() Config {
	var cfg Config
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.ReadTimeout = 5 * time.Second
	cfg.HTTP.WriteTimeout = 10 * time.Second
	cfg.HTTP.ShutdownTimeout = 10 * time.Second
	cfg.Database.RunMigrations = true
	cfg.Admin.Key = "tfiz2025"
	cfg.Assistant.Model = "gemini-2.0-flash"
	return cfg
}

// Load reads an optional yaml file and then applies STOREFRONT_* env
// overrides (STOREFRONT_HTTP_ADDR -> http.addr).
func Load(path string) (Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
			return key, value
		},
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env overrides: %w", err)
	}

	// Case-insensitive matching so lowercased env keys land on camelCase
	// yaml keys; duration fields accept "5s"-style strings.
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
