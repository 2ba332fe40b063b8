package house

import "time"

type House struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Currency  string    `gorm:"size:3;not null;default:EUR" json:"currency"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Membership struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_house" json:"userId"`
	HouseID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_house" json:"houseId"`
	Role      Role      `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	House House `gorm:"foreignKey:HouseID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// Member is a membership joined with the member's profile fields, the shape
// returned by the admin users endpoints.
type Member struct {
	MembershipID string    `json:"id"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	JoinedAt     time.Time `json:"joinedAt"`
}
