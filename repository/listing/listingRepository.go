package listingrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kashh99/closet-backend/model"
	"github.com/Kashh99/closet-backend/util/database"
	"github.com/Kashh99/closet-backend/util/fault"
)

// filterColumns is the allow-list of client-filterable fields. Anything
// outside it is rejected before touching the query.
var filterColumns = map[string]string{
	"category":       "category",
	"gender":         "gender",
	"size":           "size",
	"brand":          "brand",
	"condition":      "condition",
	"daily_price":    "daily_price",
	"deposit_amount": "deposit_amount",
}

var sortColumns = map[string]string{
	"created_at":  "created_at",
	"daily_price": "daily_price",
	"title":       "title",
}

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var opSQL = map[Op]string{
	OpEq: "=", OpGt: ">", OpGte: ">=", OpLt: "<", OpLte: "<=",
}

type Clause struct {
	Field  string
	Op     Op
	Value  string
	Values []string // OpIn only
}

type SortKey struct {
	Field string
	Desc  bool
}

type Filter struct {
	Clauses []Clause
	Sort    []SortKey
	Page    int
	Limit   int
}

type Repo interface {
	Create(ctx context.Context, l *model.Listing) error
	ByID(ctx context.Context, id int64) (*model.Listing, error)
	Update(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error)
	ListActive(ctx context.Context, f Filter) ([]model.Listing, int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const listingCols = `id, owner_id, title, description, category, gender, size,
       COALESCE(brand,''), condition, daily_price, weekly_price, deposit_amount,
       images, tags, COALESCE(location_building,''), COALESCE(location_details,''),
       is_active, created_at, updated_at`

func (r *repo) Create(ctx context.Context, l *model.Listing) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO listings
			(owner_id, title, description, category, gender, size, brand, condition,
			 daily_price, weekly_price, deposit_amount, images, tags,
			 location_building, location_details, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at, updated_at`,
		l.OwnerID, l.Title, l.Description, l.Category, l.Gender, l.Size, l.Brand,
		l.Condition, l.DailyPrice, l.WeeklyPrice, l.DepositAmount, l.Images, l.Tags,
		l.Location.Building, l.Location.Details, l.IsActive,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Listing, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+listingCols+`
		FROM listings
		WHERE id=$1`, id)
	return scanListing(row)
}

func (r *repo) Update(ctx context.Context, l *model.Listing) error {
	return r.db.Pool.QueryRow(ctx, `
		UPDATE listings
		SET title=$2, description=$3, category=$4, gender=$5, size=$6, brand=$7,
		    condition=$8, daily_price=$9, weekly_price=$10, deposit_amount=$11,
		    images=$12, tags=$13, location_building=$14, location_details=$15,
		    is_active=$16, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		l.ID, l.Title, l.Description, l.Category, l.Gender, l.Size, l.Brand,
		l.Condition, l.DailyPrice, l.WeeklyPrice, l.DepositAmount, l.Images, l.Tags,
		l.Location.Building, l.Location.Details, l.IsActive,
	).Scan(&l.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Listing, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+listingCols+`
		FROM listings
		WHERE owner_id=$1
		ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

// ListActive returns one page of active listings plus the unpaged total.
func (r *repo) ListActive(ctx context.Context, f Filter) ([]model.Listing, int64, error) {
	where, args, err := buildWhere(f.Clauses)
	if err != nil {
		return nil, 0, err
	}
	order, err := buildOrder(f.Sort)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	q := fmt.Sprintf(`SELECT %s FROM listings %s %s LIMIT %d OFFSET %d`,
		listingCols, where, order, limit, offset)
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanListings(rows)
	return out, total, err
}

func buildWhere(clauses []Clause) (string, []any, error) {
	conds := []string{"is_active = TRUE"}
	args := []any{}
	for _, c := range clauses {
		col, ok := filterColumns[c.Field]
		if !ok {
			return "", nil, fault.New(fault.Validation, "unknown filter field: "+c.Field)
		}
		if c.Op == OpIn {
			if len(c.Values) == 0 {
				return "", nil, fault.New(fault.Validation, "empty in-filter for "+c.Field)
			}
			args = append(args, c.Values)
			conds = append(conds, fmt.Sprintf("%s = ANY($%d)", col, len(args)))
			continue
		}
		op, ok := opSQL[c.Op]
		if !ok {
			return "", nil, fault.New(fault.Validation, "unknown filter operator: "+string(c.Op))
		}
		args = append(args, c.Value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}

func buildOrder(keys []SortKey) (string, error) {
	if len(keys) == 0 {
		return "ORDER BY created_at DESC, id DESC", nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			return "", fault.New(fault.Validation, "unknown sort field: "+k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanListing(row rowScanner) (*model.Listing, error) {
	l := &model.Listing{}
	err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category,
		&l.Gender, &l.Size, &l.Brand, &l.Condition, &l.DailyPrice, &l.WeeklyPrice,
		&l.DepositAmount, &l.Images, &l.Tags, &l.Location.Building,
		&l.Location.Details, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

type pgxRows interface {
	rowScanner
	Next() bool
	Err() error
}

func scanListings(rows pgxRows) ([]model.Listing, error) {
	var out []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}
