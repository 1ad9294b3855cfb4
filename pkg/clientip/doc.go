// Package clientip resolves the address of the client behind a request,
// honouring CF-Connecting-IP, X-Forwarded-For and X-Real-IP before falling
// back to RemoteAddr. The address keys rate limiting and is attached to logs.
package clientip
