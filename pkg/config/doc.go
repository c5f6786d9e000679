// Package config loads env-tagged configuration structs with caching.
//
// It wraps caarlos0/env parsing and godotenv so every package declares its
// own configuration type next to the code that consumes it, and the binary
// wires them together at startup:
//
//	var pgCfg pg.Config
//	config.MustLoad(&pgCfg)
package config
