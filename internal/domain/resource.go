package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ResourceType string

const (
	ResourceLiveRoom    ResourceType = "live_room"
	ResourceControlRoom ResourceType = "control_room"
	ResourceBooth       ResourceType = "booth"
	ResourceRehearsal   ResourceType = "rehearsal"
)

// Resource is a bookable room or space inside a studio.
type Resource struct {
	ID               int64           `json:"resource_id" gorm:"column:id;primaryKey"`
	StudioID         int64           `json:"studio_id" gorm:"not null;index"`
	Name             string          `json:"name" gorm:"type:varchar(255);not null"`
	ResourceType     ResourceType    `json:"resource_type,omitempty" gorm:"type:varchar(50)"`
	Description      string          `json:"description,omitempty" gorm:"type:text"`
	BasePricePerHour decimal.Decimal `json:"base_price_per_hour" gorm:"type:numeric(10,2);not null"`
	MaxOccupancy     *int            `json:"max_occupancy,omitempty"`
	IsActive         bool            `json:"is_active" gorm:"not null"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (Resource) TableName() string { return "resources" }

// AvailabilityTemplate is the weekly opening window of a resource.
// DayOfWeek follows time.Weekday: 0 is Sunday.
type AvailabilityTemplate struct {
	ID          int64     `json:"template_id" gorm:"column:id;primaryKey"`
	ResourceID  int64     `json:"resource_id" gorm:"not null;uniqueIndex:idx_template_resource_day"`
	DayOfWeek   int       `json:"day_of_week" gorm:"not null;uniqueIndex:idx_template_resource_day"`
	OpenTime    TimeOfDay `json:"open_time" gorm:"not null"`
	CloseTime   TimeOfDay `json:"close_time" gorm:"not null"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AvailabilityTemplate) TableName() string { return "availability_templates" }

// AvailabilityException overrides the template for one date.
// Without StartTime/EndTime it applies to the whole day.
type AvailabilityException struct {
	ID            int64               `json:"exception_id" gorm:"column:id;primaryKey"`
	ResourceID    int64               `json:"resource_id" gorm:"not null;index:idx_exception_resource_date"`
	Date          Date                `json:"date" gorm:"not null;index:idx_exception_resource_date"`
	StartTime     *TimeOfDay          `json:"start_time,omitempty"`
	EndTime       *TimeOfDay          `json:"end_time,omitempty"`
	IsAvailable   bool                `json:"is_available" gorm:"not null"`
	Reason        string              `json:"reason,omitempty" gorm:"type:varchar(255)"`
	OverridePrice decimal.NullDecimal `json:"override_price" gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (AvailabilityException) TableName() string { return "availability_exceptions" }

func (e *AvailabilityException) WholeDay() bool {
	return e.StartTime == nil || e.EndTime == nil
}
