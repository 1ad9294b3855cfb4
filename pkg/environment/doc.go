// Package environment parses APP_ENV and carries the result through request
// contexts so handlers can, for example, hide error details in production.
package environment
