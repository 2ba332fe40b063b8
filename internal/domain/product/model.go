package product

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_products_house_name" json:"name"`
	// Price is the current unit price; Prices is the append-only history
	// of totals added by each stocking, never rewritten.
	Price                 float64         `gorm:"type:numeric(12,2);not null" json:"price"`
	Prices                pq.Float64Array `gorm:"type:float8[]" json:"prices"`
	Quantity              int             `gorm:"not null" json:"quantity"`
	WarnOnQuantity        *int            `json:"warnOnQuantity"`
	IgnoreQuantityWarning bool            `gorm:"not null;default:false" json:"ignoreQuantityWarning"`
	ExpirationDate        *time.Time      `json:"expirationDate"`
	CategoryID            *string         `gorm:"type:uuid;index" json:"categoryId"`
	HouseID               string          `gorm:"type:uuid;not null;uniqueIndex:idx_products_house_name" json:"houseId"`
	UserID                string          `gorm:"type:uuid;not null" json:"userId"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CategoryRef is the slice of a category the product store needs for
// import/export: resolving names to ids inside the batch transaction.
type CategoryRef struct {
	ID   string
	Name string
}

type CreateInput struct {
	HouseID string
	UserID  string
	Name    string
	Price   float64
	// Prices seeds the history for imported rows; left empty on normal
	// creates, where the history starts from this stocking's total.
	Prices                []float64
	Quantity              int
	WarnOnQuantity        *int
	IgnoreQuantityWarning bool
	ExpirationDate        *time.Time
	CategoryID            *string
	CreatedAt             *time.Time
}

type UpdateInput struct {
	ID                    string
	HouseID               string
	Name                  string
	Price                 float64
	Quantity              int
	WarnOnQuantity        *int
	IgnoreQuantityWarning bool
	ExpirationDate        *time.Time
	CategoryID            *string
}

// ImportPayload is the import/export file format. Products reference their
// category by name so a dump re-imports cleanly into a house where every id
// is reassigned.
type ImportPayload struct {
	Products   []ImportProduct  `json:"products"`
	Categories []ImportCategory `json:"categories"`
}

type ImportProduct struct {
	Name                  string     `json:"name"`
	Price                 float64    `json:"price"`
	Prices                []float64  `json:"prices,omitempty"`
	Quantity              int        `json:"quantity"`
	WarnOnQuantity        *int       `json:"warnOnQuantity,omitempty"`
	IgnoreQuantityWarning bool       `json:"ignoreQuantityWarning,omitempty"`
	ExpirationDate        *time.Time `json:"expirationDate,omitempty"`
	Category              *string    `json:"category,omitempty"`
}

type ImportCategory struct {
	Name string `json:"name"`
}
