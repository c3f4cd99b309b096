// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by
// the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing; better to crash at boot than to run with a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file
	// holding the treasures table.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// HTTPServer is embedded (not a pointer) so its fields are
	// accessible directly on Config: cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// MustLoad reads, validates, and returns the application config.
//
// The "Must" prefix follows the Go convention: this function is allowed
// to fatal on failure. If it returns, the config is valid.
func MustLoad() *Config {
	var configPath string

	// Source 1: environment variable. The standard way to pass config
	// to a container.
	configPath = os.Getenv("CONFIG_PATH")

	// Source 2: command-line flag. Handy when running locally:
	//   go run ./cmd/treasure-hunt-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	// Verify the file exists before trying to read it, so the operator
	// gets a clear message rather than a cryptic open error later.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// cleanenv reads the YAML file, overlays any env:"..." tagged
	// values from the environment, and enforces env-required.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
