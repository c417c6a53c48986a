package catalog

// ---------- STUDIO ----------

type CreateStudioRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	IsPublished bool   `json:"is_published"`
}

// ---------- RESOURCE ----------

type CreateResourceRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	ResourceType     string `json:"resource_type" validate:"omitempty,oneof=live_room control_room booth rehearsal"`
	Description      string `json:"description"`
	BasePricePerHour string `json:"base_price_per_hour" validate:"required,numeric"`
	MaxOccupancy     *int   `json:"max_occupancy,omitempty" validate:"omitempty,gt=0"`
}

// ---------- OPENING HOURS ----------

// DayHours sets one weekday; day_of_week follows Go's time.Weekday (0 = Sunday).
type DayHours struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	OpenTime    string `json:"open_time" validate:"required,datetime=15:04"`
	CloseTime   string `json:"close_time" validate:"required,datetime=15:04"`
	IsAvailable bool   `json:"is_available"`
}

type WeeklyHoursRequest struct {
	Days []DayHours `json:"days" validate:"required,min=1,max=7,dive"`
}

// CreateExceptionRequest closes the whole date when no times are given.
type CreateExceptionRequest struct {
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string  `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime       string  `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	IsAvailable   bool    `json:"is_available"`
	Reason        string  `json:"reason,omitempty" validate:"max=255"`
	OverridePrice *string `json:"override_price,omitempty" validate:"omitempty,numeric"`
}
