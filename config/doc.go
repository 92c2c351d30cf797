// Package config loads querykit settings.
//
// It uses Viper to read a YAML file and environment variables, with an
// optional .env file loaded through godotenv. Environment variables carry the
// service prefix and override file values; QK_QUERY_CHUNK_SIZE sets
// query.chunk_size for the qk service.
//
// # Usage
//
//	cfg, err := config.Load("qk")
//	if err != nil {
//	    return err
//	}
//	logger.Init(cfg.Logging)
//
// Load searches ./qk.yml, ./config/qk.yml, ./cmd/qk/config.yml and the user
// config directory (~/.config/qk/config.yml on Linux), applies defaults and
// validates the result.
package config
