package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")
)

type (
	Repository interface {
		CreateStore(ctx context.Context, st Store) (Store, error)
		QueryAllStores(ctx context.Context, ordering ...core.DBOrdering) ([]Store, error)
		GetStoreByID(ctx context.Context, id string) (Store, error)
		UpdateStore(ctx context.Context, st Store) (Store, error)
		DeleteStoresByID(ctx context.Context, ids ...string) error

		CreateProduct(ctx context.Context, prd Product) (Product, error)
		QueryAllProducts(ctx context.Context, ordering ...core.DBOrdering) ([]Product, error)
		GetProductByID(ctx context.Context, id string) (Product, error)
		GetProductsByStoreID(ctx context.Context, storeID string) ([]Product, error)
		UpdateProduct(ctx context.Context, prd Product) (Product, error)
		DeleteProductsByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		QueryAllStores(ctx context.Context) ([]Store, error)
		GetStore(ctx context.Context, id string) (Store, error)
		CreateStore(ctx context.Context, ns NewStore) (Store, error)
		UpdateStore(ctx context.Context, id string, us UpdateStore) (Store, error)
		DeleteStores(ctx context.Context, ids ...string) error

		QueryAllProducts(ctx context.Context) ([]Product, error)
		GetProduct(ctx context.Context, id string) (Product, error)
		StoreProducts(ctx context.Context, storeID string) ([]Product, error)
		CreateProduct(ctx context.Context, np NewProduct) (Product, error)
		UpdateProduct(ctx context.Context, id string, up UpdateProduct) (Product, error)
		DeleteProducts(ctx context.Context, ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) QueryAllStores(ctx context.Context) ([]Store, error) {
	return svc.repo.QueryAllStores(ctx, core.DBOrdering{Field: "name", Ascending: true})
}

func (svc *service) GetStore(ctx context.Context, id string) (Store, error) {
	return svc.repo.GetStoreByID(ctx, id)
}

func (svc *service) CreateStore(ctx context.Context, ns NewStore) (Store, error) {
	now := time.Now().UTC()
	st := Store{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		LogoURL:   ns.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStore(ctx, st)
}

func (svc *service) UpdateStore(ctx context.Context, id string, us UpdateStore) (Store, error) {
	st, err := svc.repo.GetStoreByID(ctx, id)
	if err != nil {
		return Store{}, err
	}
	st.Name = us.Name
	st.LogoURL = us.LogoURL
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStore(ctx, st)
}

func (svc *service) DeleteStores(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStoresByID(ctx, ids...)
}

func (svc *service) QueryAllProducts(ctx context.Context) ([]Product, error) {
	return svc.repo.QueryAllProducts(ctx, core.DBOrdering{Field: "name", Ascending: true})
}

func (svc *service) GetProduct(ctx context.Context, id string) (Product, error) {
	return svc.repo.GetProductByID(ctx, id)
}

func (svc *service) StoreProducts(ctx context.Context, storeID string) ([]Product, error) {
	return svc.repo.GetProductsByStoreID(ctx, storeID)
}

func (svc *service) CreateProduct(ctx context.Context, np NewProduct) (Product, error) {
	if _, err := svc.repo.GetStoreByID(ctx, np.StoreID); err != nil {
		return Product{}, err
	}
	now := time.Now().UTC()
	prd := Product{
		ID:              uuid.New().String(),
		StoreID:         np.StoreID,
		Name:            np.Name,
		Description:     np.Description,
		Instructions:    np.Instructions,
		CostInPoints:    np.CostInPoints,
		OriginalPrice:   np.OriginalPrice,
		DiscountedPrice: np.DiscountedPrice,
		Images:          np.Images,
		Features:        np.Features,
		Specifications:  np.Specifications,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return svc.repo.CreateProduct(ctx, prd)
}

func (svc *service) UpdateProduct(ctx context.Context, id string, up UpdateProduct) (Product, error) {
	prd, err := svc.repo.GetProductByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if up.StoreID != prd.StoreID {
		if _, err := svc.repo.GetStoreByID(ctx, up.StoreID); err != nil {
			return Product{}, err
		}
	}
	prd.StoreID = up.StoreID
	prd.Name = up.Name
	prd.Description = up.Description
	prd.Instructions = up.Instructions
	prd.CostInPoints = *up.CostInPoints
	prd.OriginalPrice = *up.OriginalPrice
	prd.DiscountedPrice = *up.DiscountedPrice
	prd.Images = up.Images
	prd.Features = up.Features
	prd.Specifications = up.Specifications
	prd.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProduct(ctx, prd)
}

func (svc *service) DeleteProducts(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteProductsByID(ctx, ids...)
}
