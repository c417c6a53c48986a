package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/repository"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation error")
)

// Repository is the subset of repository.CatalogRepository the service needs.
type Repository interface {
	GetStudio(ctx context.Context, id int64) (*domain.Studio, error)
	GetResource(ctx context.Context, id int64) (*domain.Resource, error)
	ListStudios(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error)
	ListStudiosByOwner(ctx context.Context, ownerID int64) ([]domain.Studio, error)
	ListResources(ctx context.Context, studioID int64, activeOnly bool) ([]domain.Resource, error)
	ListTemplates(ctx context.Context, resourceID int64) ([]domain.AvailabilityTemplate, error)
	CreateStudio(ctx context.Context, s *domain.Studio) error
	CreateResource(ctx context.Context, res *domain.Resource) error
	SaveTemplate(ctx context.Context, t *domain.AvailabilityTemplate) error
	CreateException(ctx context.Context, e *domain.AvailabilityException) error
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo Repository
	tx   Transactor
	now  func() time.Time
}

func NewService(repo Repository, tx Transactor) *Service {
	return &Service{repo: repo, tx: tx, now: time.Now}
}

/* ---------- STUDIO ---------- */

func (s *Service) ListStudios(ctx context.Context, f repository.StudioFilters) ([]domain.Studio, int64, error) {
	studios, total, err := s.repo.ListStudios(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list studios: %w", err)
	}
	if studios == nil {
		studios = []domain.Studio{}
	}
	return studios, total, nil
}

// GetStudio returns a studio visible to the public.
func (s *Service) GetStudio(ctx context.Context, id int64) (*domain.Studio, error) {
	studio, err := s.repo.GetStudio(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "studio", id)
	}
	if !studio.AcceptsBookings() {
		return nil, fmt.Errorf("%w: studio %d", ErrNotFound, id)
	}
	return studio, nil
}

func (s *Service) ListMyStudios(ctx context.Context, p domain.Principal) ([]domain.Studio, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, ErrForbidden
	}
	studios, err := s.repo.ListStudiosByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list owner studios: %w", err)
	}
	if studios == nil {
		studios = []domain.Studio{}
	}
	return studios, nil
}

func (s *Service) CreateStudio(ctx context.Context, p domain.Principal, req CreateStudioRequest) (*domain.Studio, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, ErrForbidden
	}

	now := s.now()
	studio := &domain.Studio{
		OwnerID:     p.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Phone:       req.Phone,
		IsActive:    true,
		IsPublished: req.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateStudio(ctx, studio); err != nil {
		return nil, fmt.Errorf("create studio: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("studio_id", studio.ID).Int64("owner_id", p.UserID).Msg("Studio created")
	return studio, nil
}

/* ---------- RESOURCE ---------- */

// ListResources returns the bookable resources of a public studio.
func (s *Service) ListResources(ctx context.Context, studioID int64) ([]domain.Resource, error) {
	if _, err := s.GetStudio(ctx, studioID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListResources(ctx, studioID, true)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	if rows == nil {
		rows = []domain.Resource{}
	}
	return rows, nil
}

func (s *Service) CreateResource(ctx context.Context, p domain.Principal, studioID int64, req CreateResourceRequest) (*domain.Resource, error) {
	if err := s.requireStudioOwner(ctx, p, studioID); err != nil {
		return nil, err
	}

	price, ok := parseAmount(req.BasePricePerHour)
	if !ok || !price.IsPositive() {
		return nil, fmt.Errorf("%w: base_price_per_hour must be a positive amount with at most 2 decimal places", ErrValidation)
	}

	res := &domain.Resource{
		StudioID:         studioID,
		Name:             strings.TrimSpace(req.Name),
		ResourceType:     domain.ResourceType(req.ResourceType),
		Description:      req.Description,
		BasePricePerHour: price,
		MaxOccupancy:     req.MaxOccupancy,
		IsActive:         true,
		CreatedAt:        s.now(),
	}
	if err := s.repo.CreateResource(ctx, res); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("resource_id", res.ID).Int64("studio_id", studioID).Msg("Resource created")
	return res, nil
}

/* ---------- OPENING HOURS ---------- */

func (s *Service) GetWeeklyHours(ctx context.Context, resourceID int64) ([]domain.AvailabilityTemplate, error) {
	if _, err := s.repo.GetResource(ctx, resourceID); err != nil {
		return nil, lookupErr(err, "resource", resourceID)
	}
	rows, err := s.repo.ListTemplates(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if rows == nil {
		rows = []domain.AvailabilityTemplate{}
	}
	return rows, nil
}

// SetWeeklyHours replaces the template of every weekday named in req, atomically.
func (s *Service) SetWeeklyHours(ctx context.Context, p domain.Principal, resourceID int64, req WeeklyHoursRequest) ([]domain.AvailabilityTemplate, error) {
	templates := make([]domain.AvailabilityTemplate, 0, len(req.Days))
	seen := map[int]bool{}
	for _, d := range req.Days {
		if d.DayOfWeek == nil {
			return nil, fmt.Errorf("%w: day_of_week is required", ErrValidation)
		}
		day := *d.DayOfWeek
		if seen[day] {
			return nil, fmt.Errorf("%w: day_of_week %d given twice", ErrValidation, day)
		}
		seen[day] = true

		open, err := domain.ParseTimeOfDay(d.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		closing, err := domain.ParseTimeOfDay(d.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if d.IsAvailable && closing <= open {
			return nil, fmt.Errorf("%w: close_time must be after open_time on day %d", ErrValidation, day)
		}
		templates = append(templates, domain.AvailabilityTemplate{
			ResourceID:  resourceID,
			DayOfWeek:   day,
			OpenTime:    open,
			CloseTime:   closing,
			IsAvailable: d.IsAvailable,
			CreatedAt:   s.now(),
		})
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireResourceOwner(ctx, p, resourceID); err != nil {
			return err
		}
		for i := range templates {
			if err := s.repo.SaveTemplate(ctx, &templates[i]); err != nil {
				return fmt.Errorf("save template: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *Service) AddException(ctx context.Context, p domain.Principal, resourceID int64, req CreateExceptionRequest) (*domain.AvailabilityException, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	e := &domain.AvailabilityException{
		ResourceID:  resourceID,
		Date:        date,
		IsAvailable: req.IsAvailable,
		Reason:      strings.TrimSpace(req.Reason),
		CreatedAt:   s.now(),
	}

	switch {
	case req.StartTime == "" && req.EndTime == "":
	case req.StartTime == "" || req.EndTime == "":
		return nil, fmt.Errorf("%w: start_time and end_time go together", ErrValidation)
	default:
		start, err := domain.ParseTimeOfDay(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		end, err := domain.ParseTimeOfDay(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
		}
		e.StartTime, e.EndTime = &start, &end
	}

	if req.OverridePrice != nil {
		price, ok := parseAmount(*req.OverridePrice)
		if !ok || price.IsNegative() {
			return nil, fmt.Errorf("%w: override_price must be a non-negative amount with at most 2 decimal places", ErrValidation)
		}
		e.OverridePrice = decimal.NewNullDecimal(price)
	}

	if err := s.requireResourceOwner(ctx, p, resourceID); err != nil {
		return nil, err
	}
	if err := s.repo.CreateException(ctx, e); err != nil {
		return nil, fmt.Errorf("create exception: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int64("resource_id", resourceID).
		Str("date", date.String()).
		Bool("is_available", e.IsAvailable).
		Msg("Availability exception added")
	return e, nil
}

func (s *Service) requireStudioOwner(ctx context.Context, p domain.Principal, studioID int64) error {
	if !p.Is(domain.RoleOwner) {
		return ErrForbidden
	}
	studio, err := s.repo.GetStudio(ctx, studioID)
	if err != nil {
		return lookupErr(err, "studio", studioID)
	}
	if studio.OwnerID != p.UserID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) requireResourceOwner(ctx context.Context, p domain.Principal, resourceID int64) error {
	if !p.Is(domain.RoleOwner) {
		return ErrForbidden
	}
	res, err := s.repo.GetResource(ctx, resourceID)
	if err != nil {
		return lookupErr(err, "resource", resourceID)
	}
	return s.requireStudioOwner(ctx, p, res.StudioID)
}

// parseAmount accepts a money amount with at most two decimal places.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Exponent() < -2 {
		return decimal.Decimal{}, false
	}
	return d, true
}

func lookupErr(err error, entity string, id int64) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return fmt.Errorf("get %s: %w", entity, err)
}
