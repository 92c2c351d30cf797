package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/logger"
	"github.com/kbukum/querykit/observability"
)

// runFunc computes a command result. The result is rendered by the formatter.
type runFunc func(ctx context.Context) (any, error)

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// execute runs fn as a traced operation and renders its result. Failures are
// rendered too and come back as a reported ExitError.
func (o *RootOptions) execute(cmd *cobra.Command, fn runFunc) error {
	f := o.formatter(cmd)
	name := "qk." + cmd.Name()

	ctx, op := observability.StartOperation(cmd.Context(), name, o.metrics())
	data, err := fn(ctx)
	op.End(ctx, err)

	if err != nil {
		logger.Get("cli").Debug("command failed", logger.ErrorFields(name, err))
		code, details := "INTERNAL", any(nil)
		message := err.Error()
		if appErr, ok := errors.AsAppError(err); ok {
			code, message = string(appErr.Code), appErr.Message
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
		}
		if ferr := f.Error(code, message, details); ferr != nil {
			return ferr
		}
		exitErr := WrapExitError(exitCodeFor(err), name, err)
		exitErr.reported = true
		return exitErr
	}

	f.VerboseLog("%s finished in %s", name, op.Duration())
	return f.Success(data)
}
