package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"studiobook/internal/config"
	"studiobook/internal/database"
	"studiobook/internal/domain"
	jwtsvc "studiobook/internal/pkg/jwt"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/repository"
)

const (
	demoOwnerID    = 10
	demoCustomerID = 2
	demoAdminID    = 1
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if _, err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: "development"}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}
	if config.IsProdLike(cfg.AppEnv) {
		log.Fatal().Str("env", cfg.AppEnv).Msg("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	defer database.Close(db)

	log.Info().Msg("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	// Cleanup old data (children first)
	log.Info().Msg("Cleaning old data...")
	for _, table := range []string{"event_log", "bookings", "availability_exceptions", "availability_templates", "resources", "studios"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("Cleanup failed")
		}
	}

	ctx := context.Background()
	catalog := repository.NewCatalogRepository(db)

	// ================== STUDIOS ==================
	studios := []*domain.Studio{
		{OwnerID: demoOwnerID, Name: "Blue Room Recording", Address: "12 MG Road", City: "Bengaluru", IsActive: true, IsPublished: true},
		{OwnerID: demoOwnerID, Name: "Echo Rehearsal Hall", Address: "4 Linking Road", City: "Mumbai", IsActive: true, IsPublished: false},
	}
	for _, s := range studios {
		if err := catalog.CreateStudio(ctx, s); err != nil {
			log.Fatal().Err(err).Str("studio", s.Name).Msg("Create studio failed")
		}
	}

	// ================== RESOURCES ==================
	resources := []*domain.Resource{
		{StudioID: studios[0].ID, Name: "Live Room A", ResourceType: domain.ResourceLiveRoom, BasePricePerHour: decimal.NewFromInt(1500), IsActive: true},
		{StudioID: studios[0].ID, Name: "Vocal Booth", ResourceType: domain.ResourceBooth, BasePricePerHour: decimal.NewFromInt(800), IsActive: true},
		{StudioID: studios[1].ID, Name: "Hall 1", ResourceType: domain.ResourceRehearsal, BasePricePerHour: decimal.NewFromInt(600), IsActive: true},
	}
	for _, r := range resources {
		if err := catalog.CreateResource(ctx, r); err != nil {
			log.Fatal().Err(err).Str("resource", r.Name).Msg("Create resource failed")
		}
	}

	// ================== OPENING HOURS ==================
	// weekdays 10:00-22:00, Saturday 09:00-18:00, closed on Sunday
	for _, r := range resources {
		for day := time.Sunday; day <= time.Saturday; day++ {
			tmpl := &domain.AvailabilityTemplate{
				ResourceID:  r.ID,
				DayOfWeek:   int(day),
				OpenTime:    domain.NewTimeOfDay(10, 0),
				CloseTime:   domain.NewTimeOfDay(22, 0),
				IsAvailable: day != time.Sunday,
			}
			if day == time.Saturday {
				tmpl.OpenTime, tmpl.CloseTime = domain.NewTimeOfDay(9, 0), domain.NewTimeOfDay(18, 0)
			}
			if err := catalog.SaveTemplate(ctx, tmpl); err != nil {
				log.Fatal().Err(err).Int64("resource_id", r.ID).Msg("Save template failed")
			}
		}
	}

	// maintenance on the live room next week, and a holiday surcharge the day after
	nextWeek := domain.DateOf(time.Now().In(cfg.BookingLocation)).AddDays(7)
	from, to := domain.NewTimeOfDay(12, 0), domain.NewTimeOfDay(14, 0)
	exceptions := []*domain.AvailabilityException{
		{ResourceID: resources[0].ID, Date: nextWeek, StartTime: &from, EndTime: &to, IsAvailable: false, Reason: "Console maintenance"},
		{ResourceID: resources[0].ID, Date: nextWeek.AddDays(1), IsAvailable: true, Reason: "Holiday rate", OverridePrice: decimal.NewNullDecimal(decimal.NewFromInt(2000))},
	}
	for _, e := range exceptions {
		if err := catalog.CreateException(ctx, e); err != nil {
			log.Fatal().Err(err).Msg("Create exception failed")
		}
	}

	// ================== TOKENS ==================
	j := jwtsvc.New(cfg.JWTSecret, 7*24*time.Hour)
	for _, u := range []struct {
		id   int64
		role domain.UserRole
	}{
		{demoCustomerID, domain.RoleCustomer},
		{demoOwnerID, domain.RoleOwner},
		{demoAdminID, domain.RoleAdmin},
	} {
		token, err := j.GenerateToken(u.id, u.role)
		if err != nil {
			log.Fatal().Err(err).Msg("Token generation failed")
		}
		fmt.Printf("%-8s user_id=%-3d %s\n", u.role, u.id, token)
	}

	fmt.Println()
	fmt.Printf("Slots: GET /api/v1/bookings/available-slots/%d?booking_date=%s\n", resources[0].ID, nextWeek)
	log.Info().Int("studios", len(studios)).Int("resources", len(resources)).Msg("Seed completed")
}
