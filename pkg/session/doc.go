// Package session identifies advisor sessions so search history can be kept
// per browser tab or API client.
//
// A session is only an ID; nothing is stored server-side by this package.
// The Manager reads the ID from a Transport (header, cookie or both),
// issues a UUID when the request has none, and Middleware puts it in the
// request context:
//
//	sessions := session.NewFromConfig(cfg)
//	r.Use(sessions.Middleware)
//
//	id, _ := session.IDFromContext(r.Context())
package session
