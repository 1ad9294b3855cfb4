// Package handler provides typed HTTP handlers with a JSON response envelope.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// from package binder, and returns a Response. Wrap adapts it to
// http.HandlerFunc:
//
//	type PartRequest struct {
//		PartNumber string `path:"partNumber"`
//	}
//
//	chain := handler.HandlerFunc[handler.Context, PartRequest](
//		func(ctx handler.Context, req PartRequest) handler.Response {
//			c, err := cat.SupersessionChain(ctx, req.PartNumber)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(c)
//		},
//	)
//	r.Get("/parts/{partNumber}/supersession", handler.Wrap(chain,
//		handler.WithBinders[handler.Context, PartRequest](binder.Path()),
//	))
//
// Responses use the envelope {"data": ..., "meta": ..., "error": ...}.
// JSONError picks the status from the error: validator.ValidationErrors
// become 422 with per-field details, HTTPError keeps its own code, binder
// failures become 400 or 415 and anything else is a 500 with a generic
// message.
package handler
