// Package config loads environment variables into typed structs.
//
// The first call loads a .env file from the working directory (if present).
// Each configuration type is parsed once and cached; later calls with the same
// type receive the cached value.
//
//	var cfg slugger.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	// Or panic during startup.
//	config.MustLoad(&cfg)
package config
