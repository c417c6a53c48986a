package booking

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
)

// Settings are the booking policies fixed at startup.
type Settings struct {
	Currency string
	Location *time.Location
	Refund   RefundPolicy
}

func DefaultSettings() Settings {
	return Settings{
		Currency: "INR",
		Location: time.UTC,
		Refund:   DefaultRefundPolicy(),
	}
}

type Service struct {
	bookings BookingRepository
	catalog  CatalogRepository
	events   EventRecorder
	tx       Transactor
	locker   Locker
	checker  *Checker
	settings Settings
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	catalog CatalogRepository,
	events EventRecorder,
	tx Transactor,
	locker Locker,
	settings Settings,
) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Service{
		bookings: bookings,
		catalog:  catalog,
		events:   events,
		tx:       tx,
		locker:   locker,
		checker:  NewChecker(bookings),
		settings: settings,
		now:      time.Now,
	}
}

// Slots returns the 30-minute windows of a resource-day. Resource, schedule and
// bookings are read once per call; the returned sequence can be ranged repeatedly
// over that snapshot. Nothing is cached between calls.
func (s *Service) Slots(ctx context.Context, resourceID int64, date domain.Date) (iter.Seq[Slot], DaySchedule, error) {
	res, err := s.catalog.GetResource(ctx, resourceID)
	if err != nil {
		return nil, DaySchedule{}, s.storeErr(err, "resource", resourceID)
	}
	if !res.IsActive {
		return nil, DaySchedule{}, validation("resource_id", "this resource is not currently available for booking")
	}

	sched, err := s.schedule(ctx, res, date)
	if err != nil {
		return nil, DaySchedule{}, err
	}
	occ, err := s.checker.Occupancy(ctx, resourceID, date)
	if err != nil {
		return nil, DaySchedule{}, err
	}

	grid := SlotGrid{
		Schedule:  sched,
		Occupancy: occ,
		Now:       s.now().In(s.settings.Location),
		Location:  s.settings.Location,
	}
	return grid.All(), sched, nil
}

func (s *Service) ListAvailableSlots(ctx context.Context, resourceID int64, date domain.Date) (*SlotsResponse, error) {
	seq, sched, err := s.Slots(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	slots := slices.Collect(seq)
	if slots == nil {
		slots = []Slot{}
	}
	return &SlotsResponse{
		ResourceID:  resourceID,
		BookingDate: date,
		Closed:      sched.Closed,
		Slots:       slots,
	}, nil
}

func (s *Service) CreateBooking(ctx context.Context, p domain.Principal, req CreateBookingRequest) (*domain.Booking, error) {
	if !p.Is(domain.RoleCustomer) {
		return nil, forbidden("only customers can create bookings")
	}

	date, err := domain.ParseDate(req.BookingDate)
	if err != nil {
		return nil, validation("booking_date", err.Error())
	}
	start, err := domain.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, validation("start_time", err.Error())
	}
	end, err := domain.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, validation("end_time", err.Error())
	}

	iv, err := NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	if err := ValidateDuration(iv.Minutes()); err != nil {
		return nil, err
	}

	now := s.now()
	if !date.At(start, s.settings.Location).After(now) {
		return nil, invalidInterval("start_time", "cannot book a time slot in the past")
	}

	res, err := s.catalog.GetResource(ctx, req.ResourceID)
	if err != nil {
		return nil, s.storeErr(err, "resource", req.ResourceID)
	}
	if !res.IsActive {
		return nil, validation("resource_id", "this resource is not currently available for booking")
	}
	studio, err := s.catalog.GetStudio(ctx, res.StudioID)
	if err != nil {
		return nil, s.storeErr(err, "studio", res.StudioID)
	}
	if !studio.AcceptsBookings() {
		return nil, validation("resource_id", "this studio is not currently accepting bookings")
	}

	sched, err := s.schedule(ctx, res, date)
	if err != nil {
		return nil, err
	}
	if err := sched.Permits(iv); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:          p.UserID,
		ResourceID:      res.ID,
		StudioID:        res.StudioID,
		BookingDate:     date,
		StartTime:       iv.Start,
		EndTime:         iv.End,
		DurationMinutes: iv.Minutes(),
		Status:          domain.BookingPendingApproval,
		TotalAmount:     Price(sched.HourlyRate, iv.Minutes()),
		Currency:        s.settings.Currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	unlock, err := s.locker.Lock(ctx, SlotLockKey(res.ID, date))
	if err != nil {
		if errors.Is(err, ErrLockTimeout) {
			return nil, &Error{Kind: ErrConflict, Message: "resource is being booked by another request, try again"}
		}
		return nil, fmt.Errorf("lock resource day: %w", err)
	}
	defer unlock()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.catalog.LockResource(ctx, res.ID); err != nil {
			return s.storeErr(err, "resource", res.ID)
		}
		existing, err := s.checker.FindConflict(ctx, res.ID, date, iv, 0)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflictWith(existing)
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return s.storeErr(err, "booking", 0)
		}
		return s.record(ctx, b, domain.EventBookingCreated, p.UserID, "Booking created", map[string]any{
			"booking_date": b.BookingDate.String(),
			"start_time":   b.StartTime.String(),
			"end_time":     b.EndTime.String(),
			"total_amount": b.TotalAmount.StringFixed(moneyPlaces),
		})
	})
	if err != nil {
		return nil, s.storeErr(err, "booking", 0)
	}

	logger.FromContext(ctx).Info().
		Int64("booking_id", b.ID).
		Int64("resource_id", b.ResourceID).
		Str("date", b.BookingDate.String()).
		Str("interval", iv.String()).
		Msg("Booking created")
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	if !p.Is(domain.RoleCustomer) {
		return nil, forbidden("only customers have bookings")
	}
	rows, err := s.bookings.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return nonNil(rows), nil
}

func (s *Service) ListPendingForOwner(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	studioIDs, err := s.ownedStudios(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(studioIDs) == 0 {
		return []domain.Booking{}, nil
	}
	rows, err := s.bookings.ListPendingByStudios(ctx, studioIDs)
	if err != nil {
		return nil, fmt.Errorf("list pending bookings: %w", err)
	}
	return nonNil(rows), nil
}

// ListStudioBookings returns every booking of the owner's studios, newest date first.
func (s *Service) ListStudioBookings(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	studioIDs, err := s.ownedStudios(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(studioIDs) == 0 {
		return []domain.Booking{}, nil
	}
	rows, err := s.bookings.ListByStudios(ctx, studioIDs)
	if err != nil {
		return nil, fmt.Errorf("list studio bookings: %w", err)
	}
	return nonNil(rows), nil
}

// DecideBooking approves or rejects a pending booking on behalf of the studio owner.
func (s *Service) DecideBooking(ctx context.Context, p domain.Principal, bookingID int64, approve bool, reason string) (*domain.Booking, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, forbidden("only studio owners can approve or reject bookings")
	}
	reason = strings.TrimSpace(reason)
	if !approve && reason == "" {
		return nil, validation("rejection_reason", "rejection reason is required when rejecting a booking")
	}

	var out *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return s.storeErr(err, "booking", bookingID)
		}
		studio, err := s.catalog.GetStudio(ctx, b.StudioID)
		if err != nil {
			return s.storeErr(err, "studio", b.StudioID)
		}
		if studio.OwnerID != p.UserID {
			return forbidden("you can only manage bookings for your own studios")
		}

		from := b.Status
		now := s.now()
		action, event := "approve", domain.EventBookingApproved
		if approve {
			err = Approve(b, p.UserID, now)
		} else {
			action, event = "reject", domain.EventBookingRejected
			err = Reject(b, reason, now)
		}
		if err != nil {
			return err
		}
		if err := s.transition(ctx, b, from, action); err != nil {
			return err
		}

		meta := map[string]any{"from": string(from), "to": string(b.Status)}
		if !approve {
			meta["rejection_reason"] = reason
		}
		if err := s.record(ctx, b, event, p.UserID, "Booking "+string(b.Status), meta); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, s.storeErr(err, "booking", 0)
	}

	logger.FromContext(ctx).Info().
		Int64("booking_id", out.ID).
		Int64("owner_id", p.UserID).
		Str("status", string(out.Status)).
		Msg("Booking decided")
	return out, nil
}

// CancelBooking cancels the caller's own booking and computes the refund.
func (s *Service) CancelBooking(ctx context.Context, p domain.Principal, bookingID int64, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n < minCancelReason || n > maxCancelReason {
		return nil, validation("cancel_reason", fmt.Sprintf("cancel reason must be %d to %d characters", minCancelReason, maxCancelReason))
	}

	var out *domain.Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return s.storeErr(err, "booking", bookingID)
		}
		if b.UserID != p.UserID {
			return forbidden("you can only cancel your own bookings")
		}

		now := s.now()
		pct, amount := s.settings.Refund.Refund(b.TotalAmount, b.StartsAt(s.settings.Location), now)
		from := b.Status
		if err := Cancel(b, reason, now, pct, amount); err != nil {
			return err
		}
		if err := s.transition(ctx, b, from, "cancel"); err != nil {
			return err
		}
		if err := s.record(ctx, b, domain.EventBookingCancelled, p.UserID, "Booking cancelled", map[string]any{
			"from":              string(from),
			"cancel_reason":     reason,
			"refund_percentage": pct.StringFixed(moneyPlaces),
			"refund_amount":     amount.StringFixed(moneyPlaces),
		}); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, s.storeErr(err, "booking", 0)
	}

	logger.FromContext(ctx).Info().
		Int64("booking_id", out.ID).
		Str("refund_amount", out.RefundAmount.Decimal.StringFixed(moneyPlaces)).
		Msg("Booking cancelled")
	return out, nil
}

// GetBooking is visible to the booking's customer, the studio owner and admins.
func (s *Service) GetBooking(ctx context.Context, p domain.Principal, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.storeErr(err, "booking", bookingID)
	}
	if p.Is(domain.RoleAdmin) || b.UserID == p.UserID {
		return b, nil
	}
	if p.Is(domain.RoleOwner) {
		studio, err := s.catalog.GetStudio(ctx, b.StudioID)
		if err != nil {
			return nil, s.storeErr(err, "studio", b.StudioID)
		}
		if studio.OwnerID == p.UserID {
			return b, nil
		}
	}
	return nil, forbidden("you do not have permission to view this booking")
}

func (s *Service) schedule(ctx context.Context, res *domain.Resource, date domain.Date) (DaySchedule, error) {
	tmpl, err := s.catalog.GetTemplate(ctx, res.ID, date.Weekday())
	if err != nil {
		return DaySchedule{}, fmt.Errorf("load availability template: %w", err)
	}
	exceptions, err := s.catalog.ListExceptions(ctx, res.ID, date)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("load availability exceptions: %w", err)
	}
	return ResolveSchedule(res, date, tmpl, exceptions), nil
}

func (s *Service) ownedStudios(ctx context.Context, p domain.Principal) ([]int64, error) {
	if !p.Is(domain.RoleOwner) {
		return nil, forbidden("only studio owners can view studio bookings")
	}
	ids, err := s.catalog.ListStudioIDsByOwner(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list owner studios: %w", err)
	}
	return ids, nil
}

// transition persists b if its stored status is still from. A concurrent change
// surfaces as InvalidTransition carrying the status that won.
func (s *Service) transition(ctx context.Context, b *domain.Booking, from domain.BookingStatus, action string) error {
	err := s.bookings.UpdateTransition(ctx, b, from)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrWriteConflict) {
		return s.storeErr(err, "booking", b.ID)
	}
	current, gerr := s.bookings.GetByID(ctx, b.ID)
	if gerr != nil {
		return s.storeErr(gerr, "booking", b.ID)
	}
	return invalidTransition(current.Status, action)
}

func (s *Service) record(ctx context.Context, b *domain.Booking, eventType string, actorID int64, desc string, meta map[string]any) error {
	bookingID, studioID := b.ID, b.StudioID
	e := &domain.EventLog{
		UserID:      &actorID,
		BookingID:   &bookingID,
		StudioID:    &studioID,
		EventType:   eventType,
		Description: desc,
		Metadata:    meta,
		CreatedAt:   s.now(),
	}
	if err := s.events.Record(ctx, e); err != nil {
		return fmt.Errorf("record %s: %w", eventType, err)
	}
	return nil
}

// storeErr maps repository outcomes onto booking error kinds.
func (s *Service) storeErr(err error, entity string, id int64) error {
	var be *Error
	switch {
	case errors.As(err, &be):
		return err
	case errors.Is(err, domain.ErrRecordNotFound):
		return notFound(entity, id)
	case errors.Is(err, domain.ErrWriteConflict):
		return &Error{Kind: ErrConflict, Message: "concurrent update on " + entity + ", try again"}
	default:
		return fmt.Errorf("%s store: %w", entity, err)
	}
}

func nonNil(rows []domain.Booking) []domain.Booking {
	if rows == nil {
		return []domain.Booking{}
	}
	return rows
}
