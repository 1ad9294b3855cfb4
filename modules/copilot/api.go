package copilot

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quirkauto/advisorcopilot/handler"
	"github.com/quirkauto/advisorcopilot/pkg/binder"
	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/history"
	"github.com/quirkauto/advisorcopilot/pkg/session"
	"github.com/quirkauto/advisorcopilot/pkg/vin"
	"github.com/quirkauto/advisorcopilot/svc/copilot"
)

// LookupService is the part of copilot.Service the API serves.
type LookupService interface {
	Lookup(ctx context.Context, sessionID string, req copilot.Request) (*copilot.Result, error)
	ValidateVIN(raw string) vin.Result
	History(ctx context.Context, sessionID string) ([]copilot.Entry, error)
	ClearHistory(ctx context.Context, sessionID string) error
	Supersession(ctx context.Context, partNumber string) (catalog.Chain, error)
	CrossReferences(ctx context.Context, partNumber string) ([]catalog.CrossRef, error)
}

// API exposes the lookup service over JSON.
type API struct {
	svc          LookupService
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewAPI creates the API. errorHandler renders every failed request.
func NewAPI(svc LookupService, errorHandler handler.ErrorHandler[handler.Context]) *API {
	return &API{svc: svc, errorHandler: errorHandler}
}

// Handle returns the API routes, relative to where the router mounts them.
func (a *API) Handle() http.Handler {
	r := chi.NewRouter()

	lookup := handler.Wrap(a.lookup,
		handler.WithBinders[handler.Context, copilot.Request](
			binder.Query(),
			binder.Body(),
		),
		handler.WithErrorHandler[handler.Context, copilot.Request](a.errorHandler),
	)
	r.Get("/lookup", lookup)
	r.Post("/lookup", lookup)

	r.Get("/vin/{vin}/validate", handler.Wrap(a.validateVIN,
		handler.WithBinders[handler.Context, VINRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, VINRequest](a.errorHandler),
	))

	r.Get("/history", handler.Wrap(a.history,
		handler.WithErrorHandler[handler.Context, struct{}](a.errorHandler),
	))
	r.Delete("/history", handler.Wrap(a.clearHistory,
		handler.WithErrorHandler[handler.Context, struct{}](a.errorHandler),
	))

	r.Route("/parts/{partNumber}", func(r chi.Router) {
		r.Get("/supersession", handler.Wrap(a.supersession,
			handler.WithBinders[handler.Context, PartRequest](binder.Path()),
			handler.WithErrorHandler[handler.Context, PartRequest](a.errorHandler),
		))
		r.Get("/crossrefs", handler.Wrap(a.crossReferences,
			handler.WithBinders[handler.Context, PartRequest](binder.Path()),
			handler.WithErrorHandler[handler.Context, PartRequest](a.errorHandler),
		))
	})

	return r
}

// VINRequest names the VIN in the URL path.
type VINRequest struct {
	VIN string `path:"vin"`
}

// PartRequest names the part number in the URL path.
type PartRequest struct {
	PartNumber string `path:"partNumber"`
}

func sessionID(ctx context.Context) string {
	id, _ := session.IDFromContext(ctx)
	return id
}

func (a *API) lookup(ctx handler.Context, req copilot.Request) handler.Response {
	res, err := a.svc.Lookup(ctx, sessionID(ctx), req)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(res)
}

func (a *API) validateVIN(ctx handler.Context, req VINRequest) handler.Response {
	return handler.JSON(a.svc.ValidateVIN(req.VIN))
}

func (a *API) history(ctx handler.Context, _ struct{}) handler.Response {
	entries, err := a.svc.History(ctx, sessionID(ctx))
	if err != nil {
		return fail(err)
	}
	return handler.JSON(entries, handler.WithJSONMeta(map[string]any{"count": len(entries)}))
}

func (a *API) clearHistory(ctx handler.Context, _ struct{}) handler.Response {
	if err := a.svc.ClearHistory(ctx, sessionID(ctx)); err != nil {
		return fail(err)
	}
	return handler.Empty()
}

func (a *API) supersession(ctx handler.Context, req PartRequest) handler.Response {
	chain, err := a.svc.Supersession(ctx, req.PartNumber)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(chain)
}

func (a *API) crossReferences(ctx handler.Context, req PartRequest) handler.Response {
	refs, err := a.svc.CrossReferences(ctx, req.PartNumber)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(refs, handler.WithJSONMeta(map[string]any{"partNumber": req.PartNumber}))
}

func fail(err error) handler.Response {
	return handler.Error(httpError(err))
}

// httpError attaches an HTTP status to service errors. Validation failures
// pass through unchanged so their field details reach the client.
func httpError(err error) error {
	switch {
	case errors.Is(err, copilot.ErrInvalidVIN),
		errors.Is(err, copilot.ErrInsufficientInput),
		errors.Is(err, copilot.ErrInvalidInput) && !errors.Is(err, catalog.ErrEmptyPartNumber):
		return err
	case errors.Is(err, copilot.ErrPartNotFound):
		return errors.Join(handler.ErrNotFound.WithMessage("Part not found"), err)
	case errors.Is(err, catalog.ErrEmptyPartNumber):
		return errors.Join(handler.ErrBadRequest.WithMessage("Part number is required"), err)
	case errors.Is(err, copilot.ErrEmptySession):
		return errors.Join(handler.ErrBadRequest.WithMessage("Session ID is required"), err)
	case errors.Is(err, copilot.ErrCatalogUnavailable), errors.Is(err, history.ErrStoreFailed):
		return errors.Join(handler.ErrServiceUnavailable.WithMessage("Parts catalog is temporarily unavailable"), err)
	}
	return err
}
