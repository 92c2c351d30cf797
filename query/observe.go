package query

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/logger"
	"github.com/kbukum/querykit/observability"
)

const component = "query"

func logMaterialized(e *engine, kind string, items int) {
	if m, err := observability.Default(); err == nil {
		m.RecordMaterialization(context.Background(), kind, items)
	}
	log := logger.Get(component)
	if !log.Enabled(zerolog.DebugLevel) {
		return
	}
	log.Debug("source materialized", logger.Fields(
		logger.FieldQueryID, e.id,
		logger.FieldKind, kind,
		logger.FieldItems, items,
	))
}

func logFailure(e *engine, err error) {
	code := "UNKNOWN"
	if appErr, ok := errors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	if m, merr := observability.Default(); merr == nil {
		m.RecordError(context.Background(), code, component)
	}
	log := logger.Get(component)
	if !log.Enabled(zerolog.DebugLevel) {
		return
	}
	log.Debug("query failed", logger.Fields(
		logger.FieldQueryID, e.id,
		logger.FieldCode, code,
		logger.FieldError, err.Error(),
	))
}
