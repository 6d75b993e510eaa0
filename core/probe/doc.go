// Package probe checks that remote resources are reachable.
//
// Each URL is first validated syntactically, then fetched with a GET carrying
// "Range: bytes=0-1023" so that only a small prefix is transferred. A 200 or 206
// answer counts as reachable.
//
// # Retries
//
// Every attempt gets its own timeout drawn uniformly from [MinTimeout, MaxTimeout] so
// that many probes against one host do not retry in lockstep. Only timeouts are
// retried (up to Attempts tries in total); any other transport error fails at once.
//
// # Fan-out
//
// Run probes all targets concurrently with no cap and joins them through a
// mutex-guarded collector. The run is bounded by Deadline: probes that have not
// finished by then are reported as unresolved and are not cancelled.
//
// # Usage
//
//	p := probe.New(http.DefaultClient, cfg.Probe, logger)
//	violations := p.Run(ctx, targets)
package probe
