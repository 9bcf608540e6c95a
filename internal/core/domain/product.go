package domain

// Condition states whether a product is sold new or second-hand.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

// DefaultImageURL is assigned when a product is created without images.
const DefaultImageURL = "https://images.punkapi.com/v2/keg.png"

// Product is a catalog entry. Stock is the quantity available for purchase;
// it is only ever decremented through a conditional update that refuses to
// go below zero.
type Product struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Model        string    `json:"model"`
	Brand        string    `json:"brand"`
	Cost         float64   `json:"cost"`
	Price        float64   `json:"price"`
	Discount     float64   `json:"discount"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	Condition    Condition `json:"condition"`
	ImageURLs    []string  `json:"image_urls"`
	Stock        int       `json:"stock"`
	Transactions []string  `json:"transactions,omitempty"`
}

// ValidCondition reports whether c is one of the accepted product conditions.
func ValidCondition(c Condition) bool {
	return c == ConditionNew || c == ConditionUsed
}
