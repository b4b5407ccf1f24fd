// Package metrics records build observability data.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection needs no nil checks at call sites:
//
//	rec := metrics.OrNoop(opts.Metrics)
//	rec.IncRewrittenLink("auto_version")
//
// The CLI swaps in a PrometheusRecorder when a metrics textfile is
// configured and writes the registry with WriteTextfile after the build.
package metrics
