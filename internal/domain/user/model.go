package user

import "time"

type User struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Email string `gorm:"not null;uniqueIndex" json:"email"`
	Name  string `gorm:"not null" json:"name"`
	// PasswordHash is nil for invited accounts that have not set
	// credentials yet.
	PasswordHash *string   `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
