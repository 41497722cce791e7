// Package requestid tags every request with a correlation id, exposes it to
// log records through LoggerExtractor and lets relays forward it with
// delivered alerts.
package requestid
