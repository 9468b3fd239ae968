package server

import (
	"fmt"

	"studiobook/internal/config"
	"studiobook/internal/database"
	"studiobook/internal/modules/booking"
	"studiobook/internal/modules/engineer"
	"studiobook/internal/repository"

	"github.com/rs/zerolog/log"
)

// Stores are the repositories for the configured backend.
type Stores struct {
	Reservations booking.ReservationRepository
	Engineers    engineer.EngineerRepository
	close        func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores opens JSON files under DATA_DIR or a database, depending on
// STORE_BACKEND. Database tables are migrated on open.
func OpenStores(cfg *config.Config) (*Stores, error) {
	switch cfg.StoreBackend {
	case config.StoreDB:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := repository.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("Using database storage")
		return &Stores{
			Reservations: repository.NewReservationRepository(db),
			Engineers:    repository.NewEngineerRepository(db),
			close:        func() { database.Close(db) },
		}, nil

	default:
		reservations, err := repository.NewReservationFileRepository(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		engineers, err := repository.NewEngineerFileRepository(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", cfg.DataDir).Msg("Using file storage")
		return &Stores{Reservations: reservations, Engineers: engineers}, nil
	}
}
