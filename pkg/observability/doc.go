/*
Package observability turns engine lifecycle hooks into Prometheus metrics and
structured log lines.

Metrics are registered on a private registry so several engines (or tests)
can coexist in one process; Handler exposes it for scraping.
*/
package observability
