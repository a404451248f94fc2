package inmemdb

import (
	"context"
	"sort"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateStore(ctx context.Context, st catalog.Store) (catalog.Store, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.stores[st.ID] = &st
	return st, nil
}

func (repo *catalogRepository) QueryAllStores(ctx context.Context, ordering ...core.DBOrdering) ([]catalog.Store, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	stores := make([]catalog.Store, 0, len(repo.db.stores))
	for _, st := range repo.db.stores {
		stores = append(stores, *st)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })
	return stores, nil
}

func (repo *catalogRepository) GetStoreByID(ctx context.Context, id string) (catalog.Store, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if st, ok := repo.db.stores[id]; ok {
		return *st, nil
	}
	return catalog.Store{}, catalog.ErrStoreNotFound
}

func (repo *catalogRepository) UpdateStore(ctx context.Context, st catalog.Store) (catalog.Store, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.stores[st.ID]; !ok {
		return catalog.Store{}, catalog.ErrStoreNotFound
	}
	repo.db.stores[st.ID] = &st
	return st, nil
}

func (repo *catalogRepository) DeleteStoresByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.stores, id)
	}
	return nil
}

func (repo *catalogRepository) CreateProduct(ctx context.Context, prd catalog.Product) (catalog.Product, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.products[prd.ID] = &prd
	return repo.joinStoreName(prd), nil
}

func (repo *catalogRepository) QueryAllProducts(ctx context.Context, ordering ...core.DBOrdering) ([]catalog.Product, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	products := make([]catalog.Product, 0, len(repo.db.products))
	for _, prd := range repo.db.products {
		products = append(products, repo.joinStoreName(*prd))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (repo *catalogRepository) GetProductByID(ctx context.Context, id string) (catalog.Product, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if prd, ok := repo.db.products[id]; ok {
		return repo.joinStoreName(*prd), nil
	}
	return catalog.Product{}, catalog.ErrProductNotFound
}

func (repo *catalogRepository) GetProductsByStoreID(ctx context.Context, storeID string) ([]catalog.Product, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	products := make([]catalog.Product, 0)
	for _, prd := range repo.db.products {
		if prd.StoreID == storeID {
			products = append(products, repo.joinStoreName(*prd))
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (repo *catalogRepository) UpdateProduct(ctx context.Context, prd catalog.Product) (catalog.Product, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.products[prd.ID]; !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	repo.db.products[prd.ID] = &prd
	return repo.joinStoreName(prd), nil
}

func (repo *catalogRepository) DeleteProductsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.products, id)
	}
	return nil
}

func (repo *catalogRepository) joinStoreName(prd catalog.Product) catalog.Product {
	if st, ok := repo.db.stores[prd.StoreID]; ok {
		prd.StoreName = st.Name
	}
	return prd
}
