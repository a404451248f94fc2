package catalog

import (
	"context"
	"sync"

	"github.com/ecobirla/ecopoints/core"
)

type repositoryMock struct {
	mutex    sync.RWMutex
	stores   map[string]*Store
	products map[string]*Product
}

func NewRepositoryMock() *repositoryMock {
	return &repositoryMock{
		stores:   make(map[string]*Store),
		products: make(map[string]*Product),
	}
}

func (repo *repositoryMock) CreateStore(ctx context.Context, st Store) (Store, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.stores[st.ID] = &st
	return st, nil
}

func (repo *repositoryMock) QueryAllStores(ctx context.Context, ordering ...core.DBOrdering) ([]Store, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	stores := make([]Store, 0, len(repo.stores))
	for _, st := range repo.stores {
		stores = append(stores, *st)
	}
	return stores, nil
}

func (repo *repositoryMock) GetStoreByID(ctx context.Context, id string) (Store, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if st, ok := repo.stores[id]; ok {
		return *st, nil
	}
	return Store{}, ErrStoreNotFound
}

func (repo *repositoryMock) UpdateStore(ctx context.Context, st Store) (Store, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if _, ok := repo.stores[st.ID]; !ok {
		return Store{}, ErrStoreNotFound
	}
	repo.stores[st.ID] = &st
	return st, nil
}

func (repo *repositoryMock) DeleteStoresByID(ctx context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	for _, id := range ids {
		delete(repo.stores, id)
	}
	return nil
}

func (repo *repositoryMock) CreateProduct(ctx context.Context, prd Product) (Product, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.products[prd.ID] = &prd
	return repo.withStoreName(prd), nil
}

func (repo *repositoryMock) QueryAllProducts(ctx context.Context, ordering ...core.DBOrdering) ([]Product, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	products := make([]Product, 0, len(repo.products))
	for _, prd := range repo.products {
		products = append(products, repo.withStoreName(*prd))
	}
	return products, nil
}

func (repo *repositoryMock) GetProductByID(ctx context.Context, id string) (Product, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if prd, ok := repo.products[id]; ok {
		return repo.withStoreName(*prd), nil
	}
	return Product{}, ErrProductNotFound
}

func (repo *repositoryMock) GetProductsByStoreID(ctx context.Context, storeID string) ([]Product, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	products := make([]Product, 0)
	for _, prd := range repo.products {
		if prd.StoreID == storeID {
			products = append(products, repo.withStoreName(*prd))
		}
	}
	return products, nil
}

func (repo *repositoryMock) UpdateProduct(ctx context.Context, prd Product) (Product, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if _, ok := repo.products[prd.ID]; !ok {
		return Product{}, ErrProductNotFound
	}
	repo.products[prd.ID] = &prd
	return repo.withStoreName(prd), nil
}

func (repo *repositoryMock) DeleteProductsByID(ctx context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	for _, id := range ids {
		delete(repo.products, id)
	}
	return nil
}

func (repo *repositoryMock) withStoreName(prd Product) Product {
	if st, ok := repo.stores[prd.StoreID]; ok {
		prd.StoreName = st.Name
	}
	return prd
}
