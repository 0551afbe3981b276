// Package observe provides telemetry for the resilience core.
//
// It wires attempt and breaker-transition events from the resilience
// package into OpenTelemetry metrics and structured logs, and owns the
// telemetry bootstrap (providers, exporters, shutdown) for embedding
// applications.
//
// # Components
//
//   - Observer: configured access to a tracer, meter, and logger, with
//     graceful shutdown of the underlying providers.
//
//   - Sink: a resilience.Sink backed by an OpenTelemetry meter,
//     recording attempt counts, failure counts by kind, attempt
//     durations, and breaker transitions, tagged by dependency name.
//
//   - LoggingSink: a resilience.Sink that writes structured log lines
//     for failed attempts and breaker transitions.
//
//   - MultiSink: fans one event stream out to several sinks.
//
// # Usage
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "orders",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer obs.Shutdown(context.Background())
//
//	sink, err := observe.NewSink(obs.Meter())
//	if err != nil {
//	    return err
//	}
//
//	ex := resilience.NewExecutor("billing-api", resilience.WithSink(
//	    observe.MultiSink(sink, observe.NewLoggingSink(obs.Logger())),
//	))
//
// Sinks never report errors to the caller: a metrics-pipeline outage
// must not fail business calls.
package observe
