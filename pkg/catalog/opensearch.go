package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

// DefaultIndexPrefix names the OpenSearch indices used by the catalog.
const DefaultIndexPrefix = "copilot"

// DefaultSearchSize caps the number of listings a single search returns.
const DefaultSearchSize = 100

// OpenSearchConfig selects the indices the catalog reads from.
type OpenSearchConfig struct {
	IndexPrefix string `env:"CATALOG_INDEX_PREFIX" envDefault:"copilot"`
	SearchSize  int    `env:"CATALOG_SEARCH_SIZE" envDefault:"100"`
}

// OpenSearch is a Catalog backed by four indices: <prefix>-parts,
// <prefix>-vehicles, <prefix>-supersessions and <prefix>-crossrefs.
type OpenSearch struct {
	client *opensearch.Client
	prefix string
	size   int
}

// NewOpenSearch returns a catalog reading from the indices named by cfg.
func NewOpenSearch(client *opensearch.Client, cfg OpenSearchConfig) *OpenSearch {
	prefix := strings.TrimSpace(cfg.IndexPrefix)
	if prefix == "" {
		prefix = DefaultIndexPrefix
	}
	size := cfg.SearchSize
	if size <= 0 {
		size = DefaultSearchSize
	}
	return &OpenSearch{client: client, prefix: prefix, size: size}
}

type partDoc struct {
	PartNumber string  `json:"part_number"`
	Title      string  `json:"title"`
	OEM        string  `json:"oem"`
	Price      float64 `json:"price"`
	ETADays    int     `json:"eta_days"`
	Upsell     bool    `json:"upsell"`
	FitMake    string  `json:"fit_make"`
	FitModel   string  `json:"fit_model"`
	YearFrom   int     `json:"year_from"`
	YearTo     int     `json:"year_to"`
	SortOrder  int     `json:"sort_order"`
}

type vehicleDoc struct {
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type chainDoc struct {
	Root    string   `json:"root"`
	Chain   []string `json:"chain"`
	Current string   `json:"current"`
}

type crossRefDoc struct {
	Refs []CrossRef `json:"refs"`
}

type searchResponse[T any] struct {
	Hits struct {
		Hits []struct {
			Source T `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type getResponse[T any] struct {
	Found  bool `json:"found"`
	Source T    `json:"_source"`
}

var indexMappings = map[string]string{
	"parts": `{"mappings":{"properties":{
		"part_number":{"type":"keyword"},"title":{"type":"text"},"oem":{"type":"keyword"},
		"price":{"type":"float"},"eta_days":{"type":"integer"},"upsell":{"type":"boolean"},
		"fit_make":{"type":"keyword"},"fit_model":{"type":"keyword"},
		"year_from":{"type":"integer"},"year_to":{"type":"integer"},"sort_order":{"type":"integer"}}}}`,
	"vehicles": `{"mappings":{"properties":{
		"vin":{"type":"keyword"},"make":{"type":"keyword"},"model":{"type":"keyword"},"year":{"type":"integer"}}}}`,
	"supersessions": `{"mappings":{"properties":{
		"root":{"type":"keyword"},"chain":{"type":"keyword"},"current":{"type":"keyword"}}}}`,
	"crossrefs": `{"mappings":{"properties":{"refs":{"type":"object","enabled":false}}}}`,
}

func (o *OpenSearch) Search(ctx context.Context, v Vehicle) ([]Part, error) {
	return o.listings(ctx, v, false)
}

func (o *OpenSearch) Upsell(ctx context.Context, v Vehicle) ([]Part, error) {
	return o.listings(ctx, v, true)
}

func (o *OpenSearch) SupersessionChain(ctx context.Context, partNumber string) (Chain, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return Chain{}, ErrEmptyPartNumber
	}

	query := map[string]any{
		"size": 1,
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					term("chain", key),
					term("root", key),
				},
				"minimum_should_match": 1,
			},
		},
	}
	var resp searchResponse[chainDoc]
	if err := o.search(ctx, o.index("supersessions"), query, &resp); err != nil {
		return Chain{}, err
	}
	if len(resp.Hits.Hits) == 0 {
		return Chain{}, ErrNotFound
	}
	doc := resp.Hits.Hits[0].Source
	return Chain{Root: doc.Root, Chain: doc.Chain, Current: doc.Current}, nil
}

func (o *OpenSearch) CrossReferences(ctx context.Context, partNumber string) ([]CrossRef, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return nil, ErrEmptyPartNumber
	}

	res, err := o.client.Get(o.index("crossrefs"), key, o.client.Get.WithContext(ctx))
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []CrossRef{}, nil
	}
	var resp getResponse[crossRefDoc]
	if err := decodeResponse(res, &resp); err != nil {
		return nil, err
	}
	if resp.Source.Refs == nil {
		return []CrossRef{}, nil
	}
	return resp.Source.Refs, nil
}

// EnsureIndices creates any catalog index that does not exist yet.
func (o *OpenSearch) EnsureIndices(ctx context.Context) error {
	for name, mapping := range indexMappings {
		index := o.index(name)
		res, err := o.client.Indices.Exists([]string{index}, o.client.Indices.Exists.WithContext(ctx))
		if err != nil {
			return errors.Join(ErrBackend, err)
		}
		res.Body.Close()
		if res.StatusCode == http.StatusOK {
			continue
		}

		res, err = o.client.Indices.Create(index,
			o.client.Indices.Create.WithContext(ctx),
			o.client.Indices.Create.WithBody(strings.NewReader(mapping)),
		)
		if err != nil {
			return errors.Join(ErrBackend, err)
		}
		if err := decodeResponse(res, nil); err != nil {
			res.Body.Close()
			return err
		}
		res.Body.Close()
	}
	return nil
}

// Import indexes seed with a single bulk request and waits for a refresh so
// the documents are searchable on return.
func (o *OpenSearch) Import(ctx context.Context, seed Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}
	if err := o.EnsureIndices(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	add := func(index, id string, doc any) error {
		action := map[string]any{"index": map[string]string{"_index": index, "_id": id}}
		if err := enc.Encode(action); err != nil {
			return err
		}
		return enc.Encode(doc)
	}

	for _, v := range seed.Vehicles {
		doc := vehicleDoc{VIN: vin.Normalize(v.VIN), Make: v.Make, Model: v.Model, Year: v.Year}
		if err := add(o.index("vehicles"), doc.VIN, doc); err != nil {
			return errors.Join(ErrBackend, err)
		}
	}
	order := 0
	for _, group := range []struct {
		listings []Listing
		upsell   bool
	}{{seed.Parts, false}, {seed.Upsell, true}} {
		for _, l := range group.listings {
			order++
			doc := partDoc{
				PartNumber: normalizePartNumber(l.PartNumber),
				Title:      l.Title,
				OEM:        l.OEM,
				Price:      l.Price,
				ETADays:    l.ETADays,
				Upsell:     group.upsell,
				FitMake:    strings.ToLower(l.Fitment.Make),
				FitModel:   strings.ToLower(l.Fitment.Model),
				YearFrom:   l.Fitment.YearFrom,
				YearTo:     l.Fitment.YearTo,
				SortOrder:  order,
			}
			if err := add(o.index("parts"), doc.PartNumber, doc); err != nil {
				return errors.Join(ErrBackend, err)
			}
		}
	}
	for _, c := range seed.Chains {
		doc := chainDoc{Root: normalizePartNumber(c.Root), Current: normalizePartNumber(c.Current)}
		for _, pn := range c.Chain {
			doc.Chain = append(doc.Chain, normalizePartNumber(pn))
		}
		if doc.Root == "" {
			doc.Root = doc.Chain[0]
		}
		if err := add(o.index("supersessions"), doc.Root, doc); err != nil {
			return errors.Join(ErrBackend, err)
		}
	}
	for pn, refs := range seed.CrossReferences {
		key := normalizePartNumber(pn)
		if err := add(o.index("crossrefs"), key, crossRefDoc{Refs: refs}); err != nil {
			return errors.Join(ErrBackend, err)
		}
	}

	res, err := o.client.Bulk(&buf,
		o.client.Bulk.WithContext(ctx),
		o.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return errors.Join(ErrBackend, err)
	}
	defer res.Body.Close()

	var resp struct {
		Errors bool `json:"errors"`
	}
	if err := decodeResponse(res, &resp); err != nil {
		return err
	}
	if resp.Errors {
		return errors.Join(ErrBackend, errors.New("bulk import reported item failures"))
	}
	return nil
}

func (o *OpenSearch) listings(ctx context.Context, v Vehicle, upsell bool) ([]Part, error) {
	v, err := o.resolve(ctx, v)
	if err != nil {
		return nil, err
	}
	if v.Unidentified() {
		return []Part{}, nil
	}

	filters := []any{term("upsell", upsell)}
	if m := strings.ToLower(strings.TrimSpace(v.Make)); m != "" {
		filters = append(filters, anyOf(term("fit_make", ""), term("fit_make", m)))
	}
	if m := strings.ToLower(strings.TrimSpace(v.Model)); m != "" {
		filters = append(filters, anyOf(term("fit_model", ""), term("fit_model", m)))
	}
	if v.Year > 0 {
		filters = append(filters,
			anyOf(term("year_from", 0), rangeQuery("year_from", "lte", v.Year)),
			anyOf(term("year_to", 0), rangeQuery("year_to", "gte", v.Year)),
		)
	}

	query := map[string]any{
		"size":  o.size,
		"sort":  []any{map[string]string{"sort_order": "asc"}, map[string]string{"part_number": "asc"}},
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
	}
	var resp searchResponse[partDoc]
	if err := o.search(ctx, o.index("parts"), query, &resp); err != nil {
		return nil, err
	}

	label := v.Label()
	parts := make([]Part, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		doc := hit.Source
		p := Part{
			PartNumber: doc.PartNumber,
			Title:      doc.Title,
			OEM:        doc.OEM,
			Price:      doc.Price,
			ETADays:    doc.ETADays,
		}
		if label != "" {
			p.Fits = []string{label}
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// resolve fills make, model and year from the vehicles index. OpenSearch
// wildcard queries treat '*' as any run of characters, same as vin.Matches.
func (o *OpenSearch) resolve(ctx context.Context, v Vehicle) (Vehicle, error) {
	if strings.TrimSpace(v.VIN) == "" || (v.Make != "" && v.Model != "") {
		return v, nil
	}

	query := map[string]any{
		"size":  1,
		"sort":  []any{map[string]string{"vin": "asc"}},
		"query": map[string]any{"wildcard": map[string]any{"vin": map[string]string{"value": vin.Normalize(v.VIN)}}},
	}
	var resp searchResponse[vehicleDoc]
	if err := o.search(ctx, o.index("vehicles"), query, &resp); err != nil {
		return v, err
	}
	if len(resp.Hits.Hits) == 0 {
		return v, nil
	}

	rec := resp.Hits.Hits[0].Source
	if v.Make == "" {
		v.Make = rec.Make
	}
	if v.Model == "" {
		v.Model = rec.Model
	}
	if v.Year == 0 {
		v.Year = rec.Year
	}
	return v, nil
}

func (o *OpenSearch) search(ctx context.Context, index string, query any, out any) error {
	body, err := json.Marshal(query)
	if err != nil {
		return errors.Join(ErrBackend, err)
	}
	res, err := o.client.Search(
		o.client.Search.WithContext(ctx),
		o.client.Search.WithIndex(index),
		o.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return errors.Join(ErrBackend, err)
	}
	defer res.Body.Close()
	return decodeResponse(res, out)
}

func (o *OpenSearch) index(name string) string {
	return o.prefix + "-" + name
}

func decodeResponse(res *opensearchapi.Response, out any) error {
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return errors.Join(ErrBackend, fmt.Errorf("opensearch status %d: %s", res.StatusCode, bytes.TrimSpace(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

func term(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

func rangeQuery(field, op string, value any) map[string]any {
	return map[string]any{"range": map[string]any{field: map[string]any{op: value}}}
}

func anyOf(clauses ...any) map[string]any {
	return map[string]any{"bool": map[string]any{"should": clauses, "minimum_should_match": 1}}
}
