package handler

// productRequest is shared by create and update: PUT replaces the full
// catalog field set, mirroring the storefront's edit form.
type productRequest struct {
	Category    string   `json:"category"    validate:"required"`
	Model       string   `json:"model"       validate:"required"`
	Brand       string   `json:"brand"       validate:"required"`
	Cost        float64  `json:"cost"        validate:"required,gt=0"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Discount    float64  `json:"discount"    validate:"gte=0"`
	Description string   `json:"description" validate:"max=500"`
	Color       string   `json:"color"       validate:"required"`
	Condition   string   `json:"condition"   validate:"required,oneof=NEW USED"`
	ImageURLs   []string `json:"image_urls"`
	Stock       int      `json:"stock"       validate:"gte=0"`
}
