package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"studiobook/internal/config"
	"studiobook/internal/domain"
	"studiobook/internal/pkg/logger"
	"studiobook/internal/repository"
	"studiobook/internal/scheduling"
	"studiobook/internal/server"
)

func main() {
	hashPassword := flag.String("hash", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*hashPassword), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv})

	stores, err := server.OpenStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer stores.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	// ================== ENGINEERS ==================
	engineers := []domain.Engineer{
		{ID: "seed-eng-1", Name: "Aigerim"},
		{ID: "seed-eng-2", Name: "Daniyar"},
		{ID: "seed-eng-3", Name: "Madina"},
	}
	created := 0
	for i := range engineers {
		engineers[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := stores.Engineers.Create(ctx, &engineers[i]); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) {
				continue
			}
			log.Fatal().Err(err).Str("engineer", engineers[i].Name).Msg("Failed to seed engineer")
		}
		created++
	}
	log.Info().Int("created", created).Msg("Engineers seeded")

	// ================== RESERVATIONS ==================
	// Spread sample sessions over the current pay period so the shift table
	// has something to show.
	period := scheduling.PayPeriodFor(now)
	samples := []struct {
		offset     int
		studio     domain.Studio
		start, end string
		status     domain.ReservationStatus
		engineers  []string
		program    string
	}{
		{1, domain.Studio1, "09:00", "09:45", domain.ReservationConfirmed, []string{"seed-eng-1"}, "Morning News"},
		{2, domain.Studio2, "10:00", "12:00", domain.ReservationConfirmed, []string{"seed-eng-2"}, "Culture Hour"},
		{3, domain.Studio3, "13:00", "16:00", domain.ReservationFinalized, []string{"seed-eng-1", "seed-eng-3"}, "Podcast Live"},
		{5, domain.Studio1, "10:00", "16:00", domain.ReservationConfirmed, []string{"seed-eng-2"}, "Radio Drama"},
		{7, domain.Studio2, "18:00", "19:00", domain.ReservationNew, nil, "Interview"},
		{8, domain.Studio3, "11:00", "12:00", domain.ReservationCancelled, nil, "Cancelled Session"},
	}

	created = 0
	for i, s := range samples {
		r := &domain.Reservation{
			ID:            fmt.Sprintf("seed-res-%d", i+1),
			Studio:        s.studio,
			Date:          period.Start.AddDays(s.offset),
			StartTime:     s.start,
			EndTime:       s.end,
			Status:        s.status,
			HoursPerDay:   scheduling.Hours(s.start, s.end),
			Engineers:     append([]string{}, s.engineers...),
			EngineerCount: len(s.engineers),
			Repetition:    domain.Repetition{Kind: domain.RepeatNone},
			Name:          "Sample Producer",
			Email:         "producer@example.com",
			ProgramName:   s.program,
			CreatedAt:     now.Add(time.Duration(i) * time.Second),
			UpdatedAt:     now,
		}
		if err := stores.Reservations.Create(ctx, r); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) {
				continue
			}
			log.Fatal().Err(err).Str("reservation", r.ID).Msg("Failed to seed reservation")
		}
		created++
	}
	log.Info().
		Int("created", created).
		Str("period", period.Label()).
		Msg("Reservations seeded")
}
