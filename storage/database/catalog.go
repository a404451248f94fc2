package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/catalog"
)

const (
	storeColumns = "id, name, logo_url, created_at, updated_at"

	productColumns = "p.id, p.store_id, s.name AS store_name, p.name, p.description, p.instructions, " +
		"p.cost_in_points, p.original_price, p.discounted_price, p.images, p.features, p.specifications, " +
		"p.created_at, p.updated_at"
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateStore(ctx context.Context, st catalog.Store) (catalog.Store, error) {
	query, args, err := psql.
		Insert("stores").
		Columns("id", "name", "logo_url", "created_at", "updated_at").
		Values(st.ID, st.Name, st.LogoURL, st.CreatedAt, st.UpdatedAt).
		ToSql()
	if err != nil {
		return catalog.Store{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return catalog.Store{}, errors.Wrap(err, "creating store")
	}
	return st, nil
}

func (repo *catalogRepository) QueryAllStores(ctx context.Context, ordering ...core.DBOrdering) ([]catalog.Store, error) {
	qb := psql.Select(storeColumns).From("stores")

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy(ord.String())
		}
	} else {
		qb = qb.OrderBy("name ASC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	stores := make([]catalog.Store, 0)
	if err = repo.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying stores")
	}
	return stores, nil
}

func (repo *catalogRepository) GetStoreByID(ctx context.Context, id string) (catalog.Store, error) {
	query, args, err := psql.Select(storeColumns).From("stores").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return catalog.Store{}, errors.Wrap(err, "building query")
	}
	var st catalog.Store
	if err = repo.db.GetContext(ctx, &st, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Store{}, catalog.ErrStoreNotFound
		}
		return catalog.Store{}, errors.Wrap(err, "getting store")
	}
	return st, nil
}

func (repo *catalogRepository) UpdateStore(ctx context.Context, st catalog.Store) (catalog.Store, error) {
	query, args, err := psql.
		Update("stores").
		Set("name", st.Name).
		Set("logo_url", st.LogoURL).
		Set("updated_at", st.UpdatedAt).
		Where(sq.Eq{"id": st.ID}).
		ToSql()
	if err != nil {
		return catalog.Store{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return catalog.Store{}, errors.Wrap(err, "updating store")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Store{}, catalog.ErrStoreNotFound
	}
	return st, nil
}

func (repo *catalogRepository) DeleteStoresByID(ctx context.Context, ids ...string) error {
	query, args, err := psql.Delete("stores").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting stores")
	}
	return nil
}

// productRow maps the array and JSONB product columns.
type productRow struct {
	ID              string         `db:"id"`
	StoreID         string         `db:"store_id"`
	StoreName       string         `db:"store_name"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	Instructions    string         `db:"instructions"`
	CostInPoints    int            `db:"cost_in_points"`
	OriginalPrice   float64        `db:"original_price"`
	DiscountedPrice float64        `db:"discounted_price"`
	Images          pq.StringArray `db:"images"`
	Features        pq.StringArray `db:"features"`
	Specifications  []byte         `db:"specifications"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r productRow) toProduct() (catalog.Product, error) {
	prd := catalog.Product{
		ID:              r.ID,
		StoreID:         r.StoreID,
		StoreName:       r.StoreName,
		Name:            r.Name,
		Description:     r.Description,
		Instructions:    r.Instructions,
		CostInPoints:    r.CostInPoints,
		OriginalPrice:   r.OriginalPrice,
		DiscountedPrice: r.DiscountedPrice,
		Images:          r.Images,
		Features:        r.Features,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if len(r.Specifications) > 0 {
		if err := json.Unmarshal(r.Specifications, &prd.Specifications); err != nil {
			return catalog.Product{}, errors.Wrap(err, "decoding product specifications")
		}
	}
	return prd, nil
}

func (repo *catalogRepository) CreateProduct(ctx context.Context, prd catalog.Product) (catalog.Product, error) {
	specs := prd.Specifications
	if specs == nil {
		specs = make(map[string]string)
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "encoding product specifications")
	}

	query, args, err := psql.
		Insert("products").
		Columns("id", "store_id", "name", "description", "instructions", "cost_in_points",
			"original_price", "discounted_price", "images", "features", "specifications",
			"created_at", "updated_at").
		Values(prd.ID, prd.StoreID, prd.Name, prd.Description, prd.Instructions, prd.CostInPoints,
			prd.OriginalPrice, prd.DiscountedPrice, pq.Array(prd.Images), pq.Array(prd.Features),
			specsJSON, prd.CreatedAt, prd.UpdatedAt).
		ToSql()
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return catalog.Product{}, errors.Wrap(err, "creating product")
	}
	return repo.GetProductByID(ctx, prd.ID)
}

func (repo *catalogRepository) QueryAllProducts(ctx context.Context, ordering ...core.DBOrdering) ([]catalog.Product, error) {
	qb := repo.selectProducts()

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy("p." + ord.String())
		}
	} else {
		qb = qb.OrderBy("p.name ASC")
	}
	return repo.queryProducts(ctx, qb)
}

func (repo *catalogRepository) GetProductByID(ctx context.Context, id string) (catalog.Product, error) {
	products, err := repo.queryProducts(ctx, repo.selectProducts().Where(sq.Eq{"p.id": id}))
	if err != nil {
		return catalog.Product{}, err
	}
	if len(products) == 0 {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return products[0], nil
}

func (repo *catalogRepository) GetProductsByStoreID(ctx context.Context, storeID string) ([]catalog.Product, error) {
	return repo.queryProducts(ctx, repo.selectProducts().
		Where(sq.Eq{"p.store_id": storeID}).
		OrderBy("p.name ASC"))
}

func (repo *catalogRepository) UpdateProduct(ctx context.Context, prd catalog.Product) (catalog.Product, error) {
	specs := prd.Specifications
	if specs == nil {
		specs = make(map[string]string)
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "encoding product specifications")
	}

	query, args, err := psql.
		Update("products").
		Set("store_id", prd.StoreID).
		Set("name", prd.Name).
		Set("description", prd.Description).
		Set("instructions", prd.Instructions).
		Set("cost_in_points", prd.CostInPoints).
		Set("original_price", prd.OriginalPrice).
		Set("discounted_price", prd.DiscountedPrice).
		Set("images", pq.Array(prd.Images)).
		Set("features", pq.Array(prd.Features)).
		Set("specifications", specsJSON).
		Set("updated_at", prd.UpdatedAt).
		Where(sq.Eq{"id": prd.ID}).
		ToSql()
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return catalog.Product{}, errors.Wrap(err, "updating product")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return repo.GetProductByID(ctx, prd.ID)
}

func (repo *catalogRepository) DeleteProductsByID(ctx context.Context, ids ...string) error {
	query, args, err := psql.Delete("products").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting products")
	}
	return nil
}

func (repo *catalogRepository) selectProducts() sq.SelectBuilder {
	return psql.
		Select(productColumns).
		From("products p").
		Join("stores s ON s.id = p.store_id")
}

func (repo *catalogRepository) queryProducts(ctx context.Context, qb sq.SelectBuilder) ([]catalog.Product, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	rows := make([]productRow, 0)
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying products")
	}

	products := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		prd, err := r.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, prd)
	}
	return products, nil
}
