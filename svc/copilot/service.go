package copilot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/catalog"
	"github.com/quirkauto/advisorcopilot/pkg/history"
	"github.com/quirkauto/advisorcopilot/pkg/logger"
	"github.com/quirkauto/advisorcopilot/pkg/relevance"
	"github.com/quirkauto/advisorcopilot/pkg/sanitizer"
	"github.com/quirkauto/advisorcopilot/pkg/validator"
	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// Service answers parts lookups for service advisors.
type Service struct {
	catalog  catalog.Catalog
	history  history.Store
	log      *slog.Logger
	now      func() time.Time
	minKnown int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; the service tags it with its component name.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMinKnownVINChars overrides DefaultMinKnownVINChars.
func WithMinKnownVINChars(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minKnown = n
		}
	}
}

// New creates a Service. A nil store falls back to an in-memory history.
func New(cat catalog.Catalog, store history.Store, opts ...Option) *Service {
	if store == nil {
		store = history.NewMemoryStore()
	}
	s := &Service{
		catalog:  cat,
		history:  store,
		log:      slog.Default(),
		now:      time.Now,
		minKnown: DefaultMinKnownVINChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("copilot"))
	return s
}

// Normalize cleans the request fields the way Lookup sees them.
func Normalize(req Request) Request {
	return Request{
		VIN:   sanitizer.VIN(req.VIN),
		Make:  sanitizer.Name(req.Make),
		Model: sanitizer.Name(req.Model),
		Year:  req.Year,
		Query: sanitizer.FreeText(req.Query),
	}
}

// Validate checks a normalized request. The returned error wraps
// ErrInvalidVIN, ErrInsufficientInput or ErrInvalidInput together with
// the validator.ValidationErrors describing each field.
func (s *Service) Validate(req Request) error {
	err := validator.Apply(
		validator.ValidVIN("vin", req.VIN),
		validator.RequiredVehicle("vehicle", req.Make, req.Model, req.VIN, s.minKnown),
		validator.When(req.Year != 0, validator.Between("year", req.Year, MinYear, MaxYear)),
		validator.MaxLen("query", req.Query, sanitizer.MaxQueryLength),
	)
	ve := validator.ExtractValidationErrors(err)
	if ve == nil {
		return nil
	}

	sentinels := make([]error, 0, 3)
	if ve.Has("vin") {
		sentinels = append(sentinels, ErrInvalidVIN)
	}
	if ve.Has("vehicle") {
		sentinels = append(sentinels, ErrInsufficientInput)
	}
	if len(sentinels) == 0 {
		sentinels = append(sentinels, ErrInvalidInput)
	}
	return errors.Join(append(sentinels, ve)...)
}

// ValidateVIN reports the VIN check result for a single input, exactly as typed.
func (s *Service) ValidateVIN(raw string) vin.Result {
	return vin.Check(raw)
}

// Lookup validates the request, searches the catalog, ranks the candidates by
// the query and gathers supersession, cross references and upsell for the
// top part. The search is recorded in the session's history when sessionID
// is set.
func (s *Service) Lookup(ctx context.Context, sessionID string, req Request) (*Result, error) {
	started := s.now()
	req = Normalize(req)
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	v := catalog.Vehicle{
		VIN:   vin.Normalize(req.VIN),
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	}
	res := &Result{
		Vehicle:         v,
		CrossReferences: []catalog.CrossRef{},
	}
	if v.VIN != "" {
		check := vin.Check(req.VIN)
		res.VIN = &check
	}

	candidates, err := s.catalog.Search(ctx, v)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	res.Candidates = len(candidates)
	res.Parts = candidates
	if matches := relevance.Rank(candidates, req.Query, catalog.TitleOf); len(matches) > 0 {
		res.Matched = true
		res.Parts = make([]catalog.Part, len(matches))
		for i, m := range matches {
			res.Parts[i] = m.Item
		}
	}
	if res.Parts == nil {
		res.Parts = []catalog.Part{}
	}

	if len(res.Parts) > 0 {
		top := res.Parts[0]
		res.TopPart = &top

		chain, err := s.catalog.SupersessionChain(ctx, top.PartNumber)
		switch {
		case err == nil:
			res.Supersession = &chain
		case !errors.Is(err, catalog.ErrNotFound):
			return nil, errors.Join(ErrCatalogUnavailable, err)
		}

		refs, err := s.catalog.CrossReferences(ctx, top.PartNumber)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return nil, errors.Join(ErrCatalogUnavailable, err)
		}
		if len(refs) > 0 {
			res.CrossReferences = refs
		}
	}

	upsell, err := s.catalog.Upsell(ctx, v)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	res.Upsell = upsell
	if res.Upsell == nil {
		res.Upsell = []catalog.Part{}
	}
	res.GeneratedAt = s.now().UTC()

	s.record(ctx, sessionID, req, res)

	s.log.InfoContext(ctx, "parts lookup",
		logger.VIN(v.VIN),
		logger.Vehicle(v.Make, v.Model, v.Year),
		logger.Query(req.Query),
		logger.Results(len(res.Parts)),
		logger.Duration(s.now().Sub(started)),
	)
	return res, nil
}

// record appends the lookup to the session history. History is a
// convenience, so a failing store is logged and the lookup still succeeds.
func (s *Service) record(ctx context.Context, sessionID string, req Request, res *Result) {
	if sessionID == "" {
		return
	}
	e := history.Entry{
		VIN:        res.Vehicle.VIN,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Query:      req.Query,
		Results:    len(res.Parts),
		SearchedAt: res.GeneratedAt,
	}
	if res.TopPart != nil {
		e.TopPart = res.TopPart.PartNumber
	}
	if err := s.history.Append(ctx, sessionID, e); err != nil {
		s.log.WarnContext(ctx, "failed to record search history",
			logger.SessionID(sessionID),
			logger.Error(err),
		)
	}
}

// History returns the session's recent searches, newest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]Entry, error) {
	if sessionID == "" {
		return nil, ErrEmptySession
	}
	entries, err := s.history.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// ClearHistory forgets the session's searches.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySession
	}
	return s.history.Clear(ctx, sessionID)
}

// Supersession returns the supersession chain containing partNumber.
func (s *Service) Supersession(ctx context.Context, partNumber string) (catalog.Chain, error) {
	pn := sanitizer.Code(partNumber)
	chain, err := s.catalog.SupersessionChain(ctx, pn)
	if err != nil {
		return catalog.Chain{}, s.partError(err)
	}
	return chain, nil
}

// CrossReferences returns equivalents of partNumber in other catalogs.
func (s *Service) CrossReferences(ctx context.Context, partNumber string) ([]catalog.CrossRef, error) {
	pn := sanitizer.Code(partNumber)
	refs, err := s.catalog.CrossReferences(ctx, pn)
	if err != nil {
		return nil, s.partError(err)
	}
	if refs == nil {
		refs = []catalog.CrossRef{}
	}
	return refs, nil
}

func (s *Service) partError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return errors.Join(ErrPartNotFound, err)
	case errors.Is(err, catalog.ErrEmptyPartNumber):
		return errors.Join(ErrInvalidInput, err)
	default:
		return errors.Join(ErrCatalogUnavailable, err)
	}
}
