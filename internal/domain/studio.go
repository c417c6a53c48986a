package domain

import "time"

type Studio struct {
	ID          int64     `json:"studio_id" gorm:"column:id;primaryKey"`
	OwnerID     int64     `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Address     string    `json:"address" gorm:"type:text;not null"`
	City        string    `json:"city,omitempty" gorm:"type:varchar(100)"`
	Phone       string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	IsPublished bool      `json:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Studio) TableName() string { return "studios" }

// AcceptsBookings is true only for studios that are both active and published.
func (s *Studio) AcceptsBookings() bool {
	return s.IsActive && s.IsPublished
}
