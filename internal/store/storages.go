package store

import (
	"context"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
)

// Storages aggregates the repositories handed to the service layer.
type Storages struct {
	Transactor             Transactor
	UserRepository         UserRepository
	LoginAttemptRepository LoginAttemptRepository
	MovieRepository        MovieRepository
	EpisodeRepository      EpisodeRepository
	PurchaseRepository     PurchaseRepository
	CommentRepository      CommentRepository

	db *DB
}

// NewStorages connects to PostgreSQL and builds every repository over the
// shared pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return newStoragesFromDB(db, log), nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Transactor:             db,
		UserRepository:         NewUserRepository(db, log),
		LoginAttemptRepository: NewLoginAttemptRepository(db, log),
		MovieRepository:        NewMovieRepository(db, log),
		EpisodeRepository:      NewEpisodeRepository(db, log),
		PurchaseRepository:     NewPurchaseRepository(db, log),
		CommentRepository:      NewCommentRepository(db, log),
		db:                     db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
