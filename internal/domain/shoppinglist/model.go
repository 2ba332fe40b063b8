package shoppinglist

import "time"

// A house has at most one shopping list; it is created lazily on first read.
type ShoppingList struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	HouseID   string    `gorm:"type:uuid;not null;uniqueIndex" json:"houseId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Item struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ListID    string    `gorm:"type:uuid;not null;index" json:"listId"`
	ProductID string    `gorm:"type:uuid;not null" json:"productId"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// ProductName is joined in for display; not a column on the item.
	ProductName string `gorm:"-" json:"productName,omitempty"`
}

type ListWithItems struct {
	ShoppingList
	Items []Item `json:"items"`
}
