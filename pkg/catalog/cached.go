package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/quirkauto/advisorcopilot/pkg/cache"
)

// CacheConfig sizes the lookup cache placed in front of a slower catalog.
type CacheConfig struct {
	Size int           `env:"CATALOG_CACHE_SIZE" envDefault:"1024"`
	TTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`
}

// Cached memoizes lookups of another Catalog. Not-found chains are cached too,
// backend errors are not.
type Cached struct {
	next      Catalog
	search    *cache.LRUCache[Vehicle, []Part]
	upsell    *cache.LRUCache[Vehicle, []Part]
	chains    *cache.LRUCache[string, chainResult]
	crossRefs *cache.LRUCache[string, []CrossRef]
}

type chainResult struct {
	chain Chain
	found bool
}

// NewCached wraps next with in-memory LRU caches. Non-positive sizes fall back
// to 1024 entries per lookup kind.
func NewCached(next Catalog, cfg CacheConfig, opts ...cache.Option) *Cached {
	size := cfg.Size
	if size <= 0 {
		size = 1024
	}
	opts = append([]cache.Option{cache.WithTTL(cfg.TTL)}, opts...)
	return &Cached{
		next:      next,
		search:    cache.NewLRUCache[Vehicle, []Part](size, opts...),
		upsell:    cache.NewLRUCache[Vehicle, []Part](size, opts...),
		chains:    cache.NewLRUCache[string, chainResult](size, opts...),
		crossRefs: cache.NewLRUCache[string, []CrossRef](size, opts...),
	}
}

func (c *Cached) Search(ctx context.Context, v Vehicle) ([]Part, error) {
	return cachedParts(ctx, c.search, v, c.next.Search)
}

func (c *Cached) Upsell(ctx context.Context, v Vehicle) ([]Part, error) {
	return cachedParts(ctx, c.upsell, v, c.next.Upsell)
}

func (c *Cached) SupersessionChain(ctx context.Context, partNumber string) (Chain, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return Chain{}, ErrEmptyPartNumber
	}
	if res, ok := c.chains.Get(key); ok {
		if !res.found {
			return Chain{}, ErrNotFound
		}
		return cloneChain(res.chain), nil
	}

	chain, err := c.next.SupersessionChain(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		c.chains.Put(key, chainResult{})
		return Chain{}, err
	case err != nil:
		return Chain{}, err
	}
	c.chains.Put(key, chainResult{chain: cloneChain(chain), found: true})
	return chain, nil
}

func (c *Cached) CrossReferences(ctx context.Context, partNumber string) ([]CrossRef, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return nil, ErrEmptyPartNumber
	}
	if refs, ok := c.crossRefs.Get(key); ok {
		return slices.Clone(refs), nil
	}
	refs, err := c.next.CrossReferences(ctx, key)
	if err != nil {
		return nil, err
	}
	c.crossRefs.Put(key, slices.Clone(refs))
	return refs, nil
}

func cachedParts(
	ctx context.Context,
	store *cache.LRUCache[Vehicle, []Part],
	v Vehicle,
	load func(context.Context, Vehicle) ([]Part, error),
) ([]Part, error) {
	key := vehicleKey(v)
	if parts, ok := store.Get(key); ok {
		return cloneParts(parts), nil
	}
	parts, err := load(ctx, v)
	if err != nil {
		return nil, err
	}
	store.Put(key, cloneParts(parts))
	return parts, nil
}

// vehicleKey normalizes a vehicle so equivalent inputs share a cache entry.
func vehicleKey(v Vehicle) Vehicle {
	return Vehicle{
		VIN:   strings.ToUpper(strings.TrimSpace(v.VIN)),
		Make:  strings.ToLower(strings.TrimSpace(v.Make)),
		Model: strings.ToLower(strings.TrimSpace(v.Model)),
		Year:  v.Year,
	}
}

func cloneParts(in []Part) []Part {
	if in == nil {
		return nil
	}
	out := make([]Part, len(in))
	for i, p := range in {
		p.Fits = slices.Clone(p.Fits)
		out[i] = p
	}
	return out
}
