// Package observability provides OpenTelemetry metrics and tracing for querykit.
//
// The query engine records materializations and failures on the global meter;
// nothing is exported until a provider is installed with InitMeter (or
// otel.SetMeterProvider in tests).
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg)
//	defer mp.Shutdown(ctx)
//
// Tracing a unit of work:
//
//	ctx, op := observability.StartOperation(ctx, "qk.sort", metrics)
//	defer func() { op.End(ctx, err) }()
package observability
