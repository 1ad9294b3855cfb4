// Package requestid tags each HTTP request with an id that is echoed in the
// X-Request-ID response header and added to log records.
package requestid
