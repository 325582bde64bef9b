// Package config loads env-tagged configuration structs.
//
// Every package in this module describes its configuration as a struct with
// `env` tags (github.com/caarlos0/env) and sensible envDefault values. Load
// populates such a struct from the process environment, reading a .env file
// first if one is present (github.com/joho/godotenv), so local development
// and twelve-factor deployments use the same code path.
//
//	type Config struct {
//	    APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
