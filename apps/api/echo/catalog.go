package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/catalog"
)

type catalogApi struct {
	svc      catalog.Service
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := catalogApi{
		svc:      deps.CatalogSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/stores", jwt, adminMiddleware())
	sg.GET("", api.queryStores)
	sg.POST("", api.createStore)
	sg.GET("/:id", api.retrieveStore)
	sg.PUT("/:id", api.updateStore)
	sg.DELETE("/:id", api.destroyStore)
	sg.GET("/:id/products", api.storeProducts)

	pg := g.Group("/products", jwt, adminMiddleware())
	pg.GET("", api.queryProducts)
	pg.POST("", api.createProduct)
	pg.GET("/:id", api.retrieveProduct)
	pg.PUT("/:id", api.updateProduct)
	pg.DELETE("/:id", api.destroyProduct)
}

// Store handlers

func (api *catalogApi) queryStores(ctx echo.Context) error {
	stores, err := api.svc.QueryAllStores(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying stores")
	}
	if stores == nil {
		stores = []catalog.Store{}
	}
	return ctx.JSON(http.StatusOK, stores)
}

func (api *catalogApi) createStore(ctx echo.Context) error {
	var data catalog.NewStore
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStore")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.CreateStore(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating store")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *catalogApi) retrieveStore(ctx echo.Context) error {
	st, err := api.getStore(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *catalogApi) updateStore(ctx echo.Context) error {
	st, err := api.getStore(ctx)
	if err != nil {
		return err
	}

	var data catalog.UpdateStore
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStore")
	}
	if err := data.Validate(st, api.validate); err != nil {
		return err
	}

	st, err = api.svc.UpdateStore(ctx.Request().Context(), st.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating store")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *catalogApi) destroyStore(ctx echo.Context) error {
	if err := api.svc.DeleteStores(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting store")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) storeProducts(ctx echo.Context) error {
	st, err := api.getStore(ctx)
	if err != nil {
		return err
	}

	products, err := api.svc.StoreProducts(ctx.Request().Context(), st.ID)
	if err != nil {
		return errors.Wrap(err, "querying store products")
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return ctx.JSON(http.StatusOK, products)
}

// Product handlers

func (api *catalogApi) queryProducts(ctx echo.Context) error {
	products, err := api.svc.QueryAllProducts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying products")
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return ctx.JSON(http.StatusOK, products)
}

func (api *catalogApi) createProduct(ctx echo.Context) error {
	var data catalog.NewProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProduct")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prd, err := api.svc.CreateProduct(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == catalog.ErrStoreNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "store_id", Error: err.Error()})
		}
		return errors.Wrap(err, "creating product")
	}
	return ctx.JSON(http.StatusCreated, prd)
}

func (api *catalogApi) retrieveProduct(ctx echo.Context) error {
	prd, err := api.getProduct(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prd)
}

func (api *catalogApi) updateProduct(ctx echo.Context) error {
	prd, err := api.getProduct(ctx)
	if err != nil {
		return err
	}

	var data catalog.UpdateProduct
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProduct")
	}
	if err := data.Validate(prd, api.validate); err != nil {
		return err
	}

	prd, err = api.svc.UpdateProduct(ctx.Request().Context(), prd.ID, data)
	if err != nil {
		if errors.Cause(err) == catalog.ErrStoreNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "store_id", Error: err.Error()})
		}
		return errors.Wrap(err, "updating product")
	}
	return ctx.JSON(http.StatusOK, prd)
}

func (api *catalogApi) destroyProduct(ctx echo.Context) error {
	if err := api.svc.DeleteProducts(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting product")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) getStore(ctx echo.Context) (catalog.Store, error) {
	st, err := api.svc.GetStore(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrStoreNotFound {
			return catalog.Store{}, errHttpNotFound
		}
		return catalog.Store{}, errors.Wrap(err, "finding store by ID")
	}
	return st, nil
}

func (api *catalogApi) getProduct(ctx echo.Context) (catalog.Product, error) {
	prd, err := api.svc.GetProduct(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrProductNotFound {
			return catalog.Product{}, errHttpNotFound
		}
		return catalog.Product{}, errors.Wrap(err, "finding product by ID")
	}
	return prd, nil
}
