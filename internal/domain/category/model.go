package category

import "time"

// Category names are stored lower-cased and are unique within a house.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_categories_house_name" json:"name"`
	HouseID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_categories_house_name" json:"houseId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
