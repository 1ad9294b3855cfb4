package binder

import (
	"mime"
	"net/http"
	"strings"
)

// Func fills v from a part of r. Binders are applied in order, so later
// binders overwrite fields set by earlier ones.
type Func func(r *http.Request, v any) error

// mediaType returns the lowercased media type of the request without parameters.
func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	}
	return mt
}

// Body picks JSON or Form by the request content type. Requests without a
// body (GET, HEAD, empty POST) are left untouched.
func Body() Func {
	jsonBinder, formBinder := JSON(), Form()
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			return nil
		}
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			return formBinder(r, v)
		default:
			return jsonBinder(r, v)
		}
	}
}
