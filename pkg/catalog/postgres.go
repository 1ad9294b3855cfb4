package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/quirkauto/advisorcopilot/pkg/vin"
)

const (
	queryResolveVehicle = `SELECT make, model, year FROM vehicles WHERE vin LIKE $1 ORDER BY vin LIMIT 1`

	queryListings = `SELECT part_number, title, oem, price::float8, eta_days
FROM parts
WHERE upsell = $1
  AND ($2 = '' OR fit_make = '' OR lower(fit_make) = lower($2))
  AND ($3 = '' OR fit_model = '' OR lower(fit_model) = lower($3))
  AND ($4 = 0 OR ((year_from = 0 OR year_from <= $4) AND (year_to = 0 OR year_to >= $4)))
ORDER BY sort_order, part_number`

	queryChain = `SELECT root, part_number, is_current
FROM supersessions
WHERE root = (SELECT root FROM supersessions WHERE part_number = $1 OR root = $1 LIMIT 1)
ORDER BY position`

	queryCrossRefs = `SELECT ref_part_number, ref_type, note FROM cross_references WHERE part_number = $1 ORDER BY ref_part_number`

	upsertVehicle = `INSERT INTO vehicles (vin, make, model, year) VALUES ($1, $2, $3, $4)
ON CONFLICT (vin) DO UPDATE SET make = EXCLUDED.make, model = EXCLUDED.model, year = EXCLUDED.year`

	upsertPart = `INSERT INTO parts (part_number, title, oem, price, eta_days, upsell, fit_make, fit_model, year_from, year_to, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (part_number) DO UPDATE SET
  title = EXCLUDED.title, oem = EXCLUDED.oem, price = EXCLUDED.price, eta_days = EXCLUDED.eta_days,
  upsell = EXCLUDED.upsell, fit_make = EXCLUDED.fit_make, fit_model = EXCLUDED.fit_model,
  year_from = EXCLUDED.year_from, year_to = EXCLUDED.year_to, sort_order = EXCLUDED.sort_order`

	deleteChain = `DELETE FROM supersessions WHERE root = $1`

	insertChainLink = `INSERT INTO supersessions (root, position, part_number, is_current) VALUES ($1, $2, $3, $4)`

	upsertCrossRef = `INSERT INTO cross_references (part_number, ref_part_number, ref_type, note) VALUES ($1, $2, $3, $4)
ON CONFLICT (part_number, ref_part_number) DO UPDATE SET ref_type = EXCLUDED.ref_type, note = EXCLUDED.note`
)

// Postgres is a Catalog stored in the tables created by Migrations. Use
// stdlib.OpenDBFromPool to obtain a *sql.DB from a pgx pool.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a catalog reading from db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Search(ctx context.Context, v Vehicle) ([]Part, error) {
	return p.listings(ctx, v, false)
}

func (p *Postgres) Upsell(ctx context.Context, v Vehicle) ([]Part, error) {
	return p.listings(ctx, v, true)
}

func (p *Postgres) SupersessionChain(ctx context.Context, partNumber string) (Chain, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return Chain{}, ErrEmptyPartNumber
	}

	rows, err := p.db.QueryContext(ctx, queryChain, key)
	if err != nil {
		return Chain{}, errors.Join(ErrBackend, err)
	}
	defer rows.Close()

	var c Chain
	for rows.Next() {
		var (
			pn      string
			current bool
		)
		if err := rows.Scan(&c.Root, &pn, &current); err != nil {
			return Chain{}, errors.Join(ErrBackend, err)
		}
		c.Chain = append(c.Chain, pn)
		if current {
			c.Current = pn
		}
	}
	if err := rows.Err(); err != nil {
		return Chain{}, errors.Join(ErrBackend, err)
	}
	if len(c.Chain) == 0 {
		return Chain{}, ErrNotFound
	}
	if c.Current == "" {
		c.Current = c.Chain[len(c.Chain)-1]
	}
	return c, nil
}

func (p *Postgres) CrossReferences(ctx context.Context, partNumber string) ([]CrossRef, error) {
	key := normalizePartNumber(partNumber)
	if key == "" {
		return nil, ErrEmptyPartNumber
	}

	rows, err := p.db.QueryContext(ctx, queryCrossRefs, key)
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	defer rows.Close()

	refs := []CrossRef{}
	for rows.Next() {
		var ref CrossRef
		if err := rows.Scan(&ref.PartNumber, &ref.Type, &ref.Note); err != nil {
			return nil, errors.Join(ErrBackend, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return refs, nil
}

// Import upserts seed into the catalog tables in a single transaction.
// Chains are replaced as a whole.
func (p *Postgres) Import(ctx context.Context, seed Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBackend, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range seed.Vehicles {
		if _, err := tx.ExecContext(ctx, upsertVehicle, vin.Normalize(v.VIN), v.Make, v.Model, v.Year); err != nil {
			return errors.Join(ErrBackend, err)
		}
	}

	order := 0
	importListings := func(listings []Listing, upsell bool) error {
		for _, l := range listings {
			order++
			_, err := tx.ExecContext(ctx, upsertPart,
				normalizePartNumber(l.PartNumber), l.Title, l.OEM, l.Price, l.ETADays, upsell,
				l.Fitment.Make, l.Fitment.Model, l.Fitment.YearFrom, l.Fitment.YearTo, order,
			)
			if err != nil {
				return errors.Join(ErrBackend, err)
			}
		}
		return nil
	}
	if err := importListings(seed.Parts, false); err != nil {
		return err
	}
	if err := importListings(seed.Upsell, true); err != nil {
		return err
	}

	for _, c := range seed.Chains {
		root := normalizePartNumber(c.Root)
		if root == "" {
			root = normalizePartNumber(c.Chain[0])
		}
		if _, err := tx.ExecContext(ctx, deleteChain, root); err != nil {
			return errors.Join(ErrBackend, err)
		}
		for i, pn := range c.Chain {
			current := strings.EqualFold(pn, c.Current)
			if _, err := tx.ExecContext(ctx, insertChainLink, root, i, normalizePartNumber(pn), current); err != nil {
				return errors.Join(ErrBackend, err)
			}
		}
	}

	for pn, refs := range seed.CrossReferences {
		for _, ref := range refs {
			if _, err := tx.ExecContext(ctx, upsertCrossRef, normalizePartNumber(pn), ref.PartNumber, ref.Type, ref.Note); err != nil {
				return errors.Join(ErrBackend, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

func (p *Postgres) listings(ctx context.Context, v Vehicle, upsell bool) ([]Part, error) {
	v, err := p.resolve(ctx, v)
	if err != nil {
		return nil, err
	}
	if v.Unidentified() {
		return []Part{}, nil
	}

	rows, err := p.db.QueryContext(ctx, queryListings, upsell, strings.TrimSpace(v.Make), strings.TrimSpace(v.Model), v.Year)
	if err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	defer rows.Close()

	label := v.Label()
	parts := []Part{}
	for rows.Next() {
		var part Part
		if err := rows.Scan(&part.PartNumber, &part.Title, &part.OEM, &part.Price, &part.ETADays); err != nil {
			return nil, errors.Join(ErrBackend, err)
		}
		if label != "" {
			part.Fits = []string{label}
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrBackend, err)
	}
	return parts, nil
}

// resolve fills make, model and year from the vehicles table the same way
// ResolveVehicle does for in-memory data.
func (p *Postgres) resolve(ctx context.Context, v Vehicle) (Vehicle, error) {
	if strings.TrimSpace(v.VIN) == "" || (v.Make != "" && v.Model != "") {
		return v, nil
	}

	var rec VehicleRecord
	err := p.db.QueryRowContext(ctx, queryResolveVehicle, vin.LikePattern(v.VIN)).Scan(&rec.Make, &rec.Model, &rec.Year)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return v, nil
	case err != nil:
		return v, errors.Join(ErrBackend, err)
	}

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
