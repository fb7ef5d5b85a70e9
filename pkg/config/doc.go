// Package config loads typed configuration structs from environment
// variables. A .env file is read once per process if present; each struct
// type is parsed once and cached, so every component sees the same values no
// matter how many times it asks.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
package config
