package catalog

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core"
)

var (
	ctx      = context.Background()
	validate = newTestValidate()
)

func newTestValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func TestServiceStores(t *testing.T) {
	svc := NewService(NewRepositoryMock())

	st, err := svc.CreateStore(ctx, NewStore{Name: "Green Basket", LogoURL: "https://img.test/gb.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)

	t.Run("update keeps unset fields", func(t *testing.T) {
		us := UpdateStore{Name: "Green Basket Co-op"}
		require.NoError(t, us.Validate(st, validate))

		updated, err := svc.UpdateStore(ctx, st.ID, us)
		require.NoError(t, err)
		assert.Equal(t, "Green Basket Co-op", updated.Name)
		assert.Equal(t, "https://img.test/gb.png", updated.LogoURL)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteStores(ctx, st.ID))
		_, err := svc.GetStore(ctx, st.ID)
		assert.Equal(t, ErrStoreNotFound, err)
	})
}

func TestServiceProducts(t *testing.T) {
	svc := NewService(NewRepositoryMock())

	st, err := svc.CreateStore(ctx, NewStore{Name: "Green Basket"})
	require.NoError(t, err)

	t.Run("create requires an existing store", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, NewProduct{StoreID: "nope", Name: "Bamboo bottle"})
		assert.Equal(t, ErrStoreNotFound, err)
	})

	prd, err := svc.CreateProduct(ctx, NewProduct{
		StoreID:         st.ID,
		Name:            "Bamboo bottle",
		Instructions:    "Show the redemption code at the counter.",
		CostInPoints:    120,
		OriginalPrice:   499,
		DiscountedPrice: 349,
		Images:          []string{"https://img.test/bottle.jpg"},
		Features:        []string{"750ml", "BPA free"},
		Specifications:  map[string]string{"material": "bamboo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Basket", prd.StoreName)

	t.Run("update keeps unset fields", func(t *testing.T) {
		cost := 100
		up := UpdateProduct{CostInPoints: &cost}
		require.NoError(t, up.Validate(prd, validate))

		updated, err := svc.UpdateProduct(ctx, prd.ID, up)
		require.NoError(t, err)
		assert.Equal(t, 100, updated.CostInPoints)
		assert.Equal(t, 349.0, updated.DiscountedPrice)
		assert.Equal(t, []string{"750ml", "BPA free"}, updated.Features)
	})

	t.Run("store products", func(t *testing.T) {
		products, err := svc.StoreProducts(ctx, st.ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, prd.ID, products[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteProducts(ctx, prd.ID))
		_, err := svc.GetProduct(ctx, prd.ID)
		assert.Equal(t, ErrProductNotFound, err)
	})
}
