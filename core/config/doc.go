// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/nopianhadi/adminkit/core/config"
//
//	type StoreConfig struct {
//		BaseURL string `env:"STORE_URL,required"`
//		APIKey  string `env:"STORE_API_KEY,required"`
//	}
//
//	func main() {
//		var cfg StoreConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime;
// later calls for the same type return the cached value. Different types
// are cached independently.
//
// Required variables that are absent surface as errors from Load (or a
// panic from MustLoad), which makes missing mandatory configuration a
// startup failure rather than a runtime one.
package config
