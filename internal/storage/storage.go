package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"github.com/louisbranch/herosheet/internal/systems/drawsteel"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// HeroSummary is a listing entry for a stored hero.
type HeroSummary struct {
	ID        string
	Name      string
	Class     string
	Level     int
	UpdatedAt time.Time
}

// HeroStore persists hero records.
type HeroStore interface {
	PutHero(ctx context.Context, record drawsteel.HeroRecord) error
	GetHero(ctx context.Context, id string) (drawsteel.HeroRecord, error)
	ListHeroes(ctx context.Context, limit int) ([]HeroSummary, error)
	DeleteHero(ctx context.Context, id string) error
}
