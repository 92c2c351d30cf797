// Package validation checks configuration and command input.
//
// Struct tag validation goes through go-playground/validator. Field names in
// messages follow the mapstructure tags, so an error names the same key a
// user writes in config.yml:
//
//	type Defaults struct {
//	    ChunkSize int `mapstructure:"chunk_size" validate:"gte=1"`
//	}
//	err := validation.Validate(cfg) // "query.chunk_size: must be at least 1"
//
// Programmatic validation collects errors for values that do not live in a
// struct, such as command-line arguments:
//
//	v := validation.New()
//	v.Min("size", size, 1)
//	err := v.Validate()
//
// Both forms return an *errors.AppError with code INVALID_ARGUMENT and the
// offending fields under Details["fields"].
package validation
