package storage

import (
	"context"

	"github.com/UK-Mindset/mind-set/internal"
)

type UserRepository interface {
	FindUser(ctx context.Context, userID int64) (*internal.User, error)
	FindUserByToken(ctx context.Context, token string) (*internal.User, error)
}

type MoodRepository interface {
	FindMood(ctx context.Context, moodID int64) (*internal.Mood, error)
	// SaveMood persists a new mood and fills in its assigned ID.
	SaveMood(ctx context.Context, mood *internal.Mood) error
	UpdateMood(ctx context.Context, mood *internal.Mood) error
	DeleteMood(ctx context.Context, moodID int64) error
	ListMoods(ctx context.Context, userID int64) ([]internal.Mood, error)
}

// Store is the unit the service layer works against. InTx runs fn inside a single
// all-or-nothing scope: every read and write fn performs either commits together
// or none of it does.
type Store interface {
	UserRepository
	MoodRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
