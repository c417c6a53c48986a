package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiobook/internal/database"
	"studiobook/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (*domain.Studio, *domain.Resource) {
	t.Helper()
	ctx := context.Background()
	catalog := NewCatalogRepository(db)

	studio := &domain.Studio{OwnerID: 10, Name: "Blue Room", Address: "1 Main St", IsActive: true, IsPublished: true}
	require.NoError(t, catalog.CreateStudio(ctx, studio))
	res := &domain.Resource{StudioID: studio.ID, Name: "Live Room A", BasePricePerHour: decimal.NewFromInt(1500), IsActive: true}
	require.NoError(t, catalog.CreateResource(ctx, res))
	return studio, res
}

func newBooking(res *domain.Resource, date domain.Date, start, end string, status domain.BookingStatus) *domain.Booking {
	s, e := domain.MustTimeOfDay(start), domain.MustTimeOfDay(end)
	return &domain.Booking{
		UserID:          1,
		ResourceID:      res.ID,
		StudioID:        res.StudioID,
		BookingDate:     date,
		StartTime:       s,
		EndTime:         e,
		DurationMinutes: int(e - s),
		Status:          status,
		TotalAmount:     decimal.RequireFromString("3000.00"),
		Currency:        "INR",
	}
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	db := setupDB(t)
	_, res := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	date := domain.NewDate(2026, time.October, 20)

	b := newBooking(res, date, "14:00", "16:00", domain.BookingPendingApproval)
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, date, got.BookingDate)
	assert.Equal(t, domain.MustTimeOfDay("14:00"), got.StartTime)
	assert.Equal(t, domain.MustTimeOfDay("16:00"), got.EndTime)
	assert.Equal(t, domain.BookingPendingApproval, got.Status)
	assert.Equal(t, "3000.00", got.TotalAmount.StringFixed(2))
	assert.False(t, got.RefundAmount.Valid)
	assert.Nil(t, got.ApprovedBy)
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	_, err := NewBookingRepository(db).GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestBookingRepository_ListActive(t *testing.T) {
	db := setupDB(t)
	_, res := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	date := domain.NewDate(2026, time.October, 20)

	require.NoError(t, repo.Create(ctx, newBooking(res, date, "12:00", "13:00", domain.BookingApproved)))
	require.NoError(t, repo.Create(ctx, newBooking(res, date, "09:00", "10:00", domain.BookingPendingApproval)))
	require.NoError(t, repo.Create(ctx, newBooking(res, date, "10:00", "11:00", domain.BookingCancelled)))
	require.NoError(t, repo.Create(ctx, newBooking(res, date, "11:00", "12:00", domain.BookingRejected)))
	require.NoError(t, repo.Create(ctx, newBooking(res, date.AddDays(1), "09:00", "10:00", domain.BookingConfirmed)))

	rows, err := repo.ListActive(ctx, res.ID, date)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.MustTimeOfDay("09:00"), rows[0].StartTime)
	assert.Equal(t, domain.MustTimeOfDay("12:00"), rows[1].StartTime)
}

func TestBookingRepository_Listings(t *testing.T) {
	db := setupDB(t)
	studio, res := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	date := domain.NewDate(2026, time.October, 20)

	first := newBooking(res, date, "09:00", "10:00", domain.BookingPendingApproval)
	first.CreatedAt = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	second := newBooking(res, date.AddDays(2), "09:00", "10:00", domain.BookingPendingApproval)
	second.CreatedAt = time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
	approved := newBooking(res, date.AddDays(1), "11:00", "12:00", domain.BookingApproved)
	approved.CreatedAt = time.Date(2026, 10, 3, 8, 0, 0, 0, time.UTC)
	for _, b := range []*domain.Booking{first, second, approved} {
		require.NoError(t, repo.Create(ctx, b))
	}

	pending, err := repo.ListPendingByStudios(ctx, []int64{studio.ID})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)

	all, err := repo.ListByStudios(ctx, []int64{studio.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{second.ID, approved.ID, first.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, approved.ID, mine[0].ID)

	none, err := repo.ListByUser(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingRepository_UpdateTransition(t *testing.T) {
	db := setupDB(t)
	_, res := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b := newBooking(res, domain.NewDate(2026, time.October, 20), "14:00", "16:00", domain.BookingPendingApproval)
	require.NoError(t, repo.Create(ctx, b))

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	reason := "plans changed"
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	b.CancelReason = &reason
	b.RefundPercentage = decimal.NewNullDecimal(decimal.NewFromInt(80))
	b.RefundAmount = decimal.NewNullDecimal(decimal.RequireFromString("2400.00"))
	require.NoError(t, repo.UpdateTransition(ctx, b, domain.BookingPendingApproval))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, reason, *got.CancelReason)
	assert.Equal(t, "2400.00", got.RefundAmount.Decimal.StringFixed(2))
	assert.Equal(t, "80.00", got.RefundPercentage.Decimal.StringFixed(2))

	// stale expected status
	err = repo.UpdateTransition(ctx, b, domain.BookingPendingApproval)
	assert.ErrorIs(t, err, domain.ErrWriteConflict)
}

func TestTxManager_RollbackAndNesting(t *testing.T) {
	db := setupDB(t)
	_, res := seedCatalog(t, db)
	repo := NewBookingRepository(db)
	txm := NewTxManager(db)
	ctx := context.Background()
	date := domain.NewDate(2026, time.October, 20)
	boom := errors.New("boom")

	err := txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, newBooking(res, date, "09:00", "10:00", domain.BookingPendingApproval)); err != nil {
			return err
		}
		return txm.WithinTx(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	rows, err := repo.ListActive(ctx, res.ID, date)
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = txm.WithinTx(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, newBooking(res, date, "09:00", "10:00", domain.BookingPendingApproval))
	})
	require.NoError(t, err)
	rows, err = repo.ListActive(ctx, res.ID, date)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCatalogRepository(t *testing.T) {
	db := setupDB(t)
	studio, res := seedCatalog(t, db)
	catalog := NewCatalogRepository(db)
	ctx := context.Background()

	tmpl, err := catalog.GetTemplate(ctx, res.ID, time.Monday)
	require.NoError(t, err)
	assert.Nil(t, tmpl)

	require.NoError(t, catalog.SaveTemplate(ctx, &domain.AvailabilityTemplate{
		ResourceID: res.ID, DayOfWeek: int(time.Monday),
		OpenTime: domain.MustTimeOfDay("10:00"), CloseTime: domain.MustTimeOfDay("18:00"), IsAvailable: true,
	}))
	require.NoError(t, catalog.SaveTemplate(ctx, &domain.AvailabilityTemplate{
		ResourceID: res.ID, DayOfWeek: int(time.Monday),
		OpenTime: domain.MustTimeOfDay("08:00"), CloseTime: domain.MustTimeOfDay("20:00"), IsAvailable: true,
	}))
	tmpl, err = catalog.GetTemplate(ctx, res.ID, time.Monday)
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	assert.Equal(t, domain.MustTimeOfDay("08:00"), tmpl.OpenTime)

	date := domain.NewDate(2026, time.October, 26)
	start, end := domain.MustTimeOfDay("12:00"), domain.MustTimeOfDay("13:00")
	require.NoError(t, catalog.CreateException(ctx, &domain.AvailabilityException{
		ResourceID: res.ID, Date: date, StartTime: &start, EndTime: &end, Reason: "maintenance",
	}))
	ex, err := catalog.ListExceptions(ctx, res.ID, date)
	require.NoError(t, err)
	require.Len(t, ex, 1)
	assert.False(t, ex[0].WholeDay())
	assert.Equal(t, start, *ex[0].StartTime)

	ids, err := catalog.ListStudioIDsByOwner(ctx, studio.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, []int64{studio.ID}, ids)

	assert.NoError(t, catalog.LockResource(ctx, res.ID))
	assert.ErrorIs(t, catalog.LockResource(ctx, 9999), domain.ErrRecordNotFound)

	_, err = catalog.GetStudio(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestCatalogRepository_Listings(t *testing.T) {
	db := setupDB(t)
	studio, res := seedCatalog(t, db)
	catalog := NewCatalogRepository(db)
	ctx := context.Background()

	hidden := &domain.Studio{OwnerID: 10, Name: "Draft", Address: "2 Main St", City: "Pune", IsActive: true}
	require.NoError(t, catalog.CreateStudio(ctx, hidden))
	retired := &domain.Resource{StudioID: studio.ID, Name: "Old Booth", BasePricePerHour: decimal.NewFromInt(100)}
	require.NoError(t, catalog.CreateResource(ctx, retired))

	studios, total, err := catalog.ListStudios(ctx, StudioFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, studios, 1)
	assert.Equal(t, studio.ID, studios[0].ID)

	_, total, err = catalog.ListStudios(ctx, StudioFilters{City: "pune"})
	require.NoError(t, err)
	assert.Zero(t, total)

	mine, err := catalog.ListStudiosByOwner(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	active, err := catalog.ListResources(ctx, studio.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, res.ID, active[0].ID)

	all, err := catalog.ListResources(ctx, studio.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	for _, day := range []time.Weekday{time.Friday, time.Monday} {
		require.NoError(t, catalog.SaveTemplate(ctx, &domain.AvailabilityTemplate{
			ResourceID: res.ID, DayOfWeek: int(day),
			OpenTime: domain.MustTimeOfDay("10:00"), CloseTime: domain.MustTimeOfDay("18:00"), IsAvailable: true,
		}))
	}
	tmpls, err := catalog.ListTemplates(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, tmpls, 2)
	assert.Equal(t, int(time.Monday), tmpls[0].DayOfWeek)
}

func TestEventRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	bookingID := int64(5)

	old := &domain.EventLog{
		BookingID: &bookingID, EventType: domain.EventBookingCreated,
		Metadata:  map[string]any{"total_amount": "3000.00"},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	recent := &domain.EventLog{
		BookingID: &bookingID, EventType: domain.EventBookingApproved,
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Record(ctx, old))
	require.NoError(t, repo.Record(ctx, recent))

	rows, err := repo.ListByBooking(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.EventBookingCreated, rows[0].EventType)
	assert.Equal(t, "3000.00", rows[0].Metadata["total_amount"])

	n, err := repo.DeleteOlderThan(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err = repo.ListByBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), domain.ErrRecordNotFound)

	for _, code := range []string{"40001", "40P01", "55P03", "23505", "23P01"} {
		err := translateError(&pgconn.PgError{Code: code, Message: "x"})
		assert.ErrorIs(t, err, domain.ErrWriteConflict, code)
	}

	other := &pgconn.PgError{Code: "42P01"}
	assert.Same(t, other, translateError(other))
}
