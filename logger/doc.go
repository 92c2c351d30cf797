// Package logger provides structured logging for querykit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. The query engine logs through the "query"
// component; swap it with Register("query", l).
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("query")
//	log.Debug("materialized", logger.Fields(logger.FieldKind, "sort", logger.FieldItems, 8))
package logger
