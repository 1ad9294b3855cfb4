// Package config reads struct-tagged configuration from environment variables
// using github.com/caarlos0/env, with optional .env files loaded through
// github.com/joho/godotenv.
//
//	type CatalogConfig struct {
//	    Backend  string `env:"CATALOG_BACKEND" envDefault:"memory"`
//	    SeedFile string `env:"CATALOG_SEED_FILE"`
//	}
//
//	var cfg CatalogConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Load caches one value per struct type. Parse skips the cache and accepts
// options such as WithEnviron, which tests use instead of touching the
// process environment.
package config
