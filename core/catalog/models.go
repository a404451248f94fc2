package catalog

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ecobirla/ecopoints/core"
)

type Store struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	LogoURL   string    `json:"logo_url" db:"logo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a redeemable catalog item. StoreName is joined in on reads and
// never written directly.
type Product struct {
	ID              string            `json:"id" db:"id"`
	StoreID         string            `json:"store_id" db:"store_id"`
	StoreName       string            `json:"store_name,omitempty" db:"store_name"`
	Name            string            `json:"name" db:"name"`
	Description     string            `json:"description" db:"description"`
	Instructions    string            `json:"instructions" db:"instructions"`
	CostInPoints    int               `json:"cost_in_points" db:"cost_in_points"`
	OriginalPrice   float64           `json:"original_price" db:"original_price"`     // INR
	DiscountedPrice float64           `json:"discounted_price" db:"discounted_price"` // INR
	Images          []string          `json:"images" db:"images"`
	Features        []string          `json:"features" db:"features"`
	Specifications  map[string]string `json:"specifications" db:"specifications"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

type NewStore struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logo_url"`
}

func (ns *NewStore) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

type UpdateStore struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

func (us *UpdateStore) Validate(origSt Store, validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)

	if us.Name == "" {
		us.Name = origSt.Name
	}
	if us.LogoURL == "" {
		us.LogoURL = origSt.LogoURL
	}
	return validate.Struct(us)
}

type NewProduct struct {
	StoreID         string            `json:"store_id" validate:"required"`
	Name            string            `json:"name" validate:"required"`
	Description     string            `json:"description"`
	Instructions    string            `json:"instructions"`
	CostInPoints    int               `json:"cost_in_points" validate:"gte=0"`
	OriginalPrice   float64           `json:"original_price" validate:"gte=0"`
	DiscountedPrice float64           `json:"discounted_price" validate:"gte=0"`
	Images          []string          `json:"images"`
	Features        []string          `json:"features"`
	Specifications  map[string]string `json:"specifications"`
}

func (np *NewProduct) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	return validate.Struct(np)
}

type UpdateProduct struct {
	StoreID         string            `json:"store_id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Instructions    string            `json:"instructions"`
	CostInPoints    *int              `json:"cost_in_points" validate:"omitempty,gte=0"`
	OriginalPrice   *float64          `json:"original_price" validate:"omitempty,gte=0"`
	DiscountedPrice *float64          `json:"discounted_price" validate:"omitempty,gte=0"`
	Images          []string          `json:"images"`
	Features        []string          `json:"features"`
	Specifications  map[string]string `json:"specifications"`
}

func (up *UpdateProduct) Validate(origPrd Product, validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)

	if up.StoreID == "" {
		up.StoreID = origPrd.StoreID
	}
	if up.Name == "" {
		up.Name = origPrd.Name
	}
	if up.Description == "" {
		up.Description = origPrd.Description
	}
	if up.Instructions == "" {
		up.Instructions = origPrd.Instructions
	}
	if up.CostInPoints == nil {
		up.CostInPoints = &origPrd.CostInPoints
	}
	if up.OriginalPrice == nil {
		up.OriginalPrice = &origPrd.OriginalPrice
	}
	if up.DiscountedPrice == nil {
		up.DiscountedPrice = &origPrd.DiscountedPrice
	}
	if up.Images == nil {
		up.Images = origPrd.Images
	}
	if up.Features == nil {
		up.Features = origPrd.Features
	}
	if up.Specifications == nil {
		up.Specifications = origPrd.Specifications
	}
	return validate.Struct(up)
}
