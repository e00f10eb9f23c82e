package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/storage"
)

var validate = validator.New()

const moodDateLayout = "2006-01-02"

type AddMoodRequest struct {
	UserID        int64  `json:"user_id" validate:"required"`
	MoodCategory  string `json:"mood_category" validate:"required"`
	MoodSituation string `json:"mood_situation" validate:"required"`
	MoodTitle     string `json:"mood_title" validate:"required"`
	MoodReason    string `json:"mood_reason" validate:"required"`
	MoodDate      string `json:"mood_date" validate:"required,datetime=2006-01-02"`
}

type UpdateMoodRequest struct {
	UserID     int64  `json:"user_id" validate:"required"`
	MoodTitle  string `json:"mood_title" validate:"omitempty"`
	MoodReason string `json:"mood_reason" validate:"omitempty"`
}

type DeleteMoodRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

func validateForm(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalidInput, err)
	}
	return nil
}

// moodTimestamp combines the caller-supplied calendar date with the current
// time-of-day, so entries added for the same day order by when they were written.
func moodTimestamp(date string, now time.Time) time.Time {
	d, _ := time.Parse(moodDateLayout, date)
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
}

// AddMood validates the request, resolves the owning user and both enum fields,
// and persists a new mood inside one transactional scope.
func AddMood(ctx context.Context, store storage.Store, req *AddMoodRequest) (*internal.Mood, error) {
	if err := validateForm(req); err != nil {
		return nil, err
	}

	var mood *internal.Mood
	err := store.InTx(ctx, func(tx storage.Store) error {
		user, err := tx.FindUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		category, ok := internal.ParseMoodCategory(req.MoodCategory)
		if !ok {
			return fmt.Errorf("%w: mood category does not exist", internal.ErrNotFound)
		}
		situation, ok := internal.ParseMoodSituation(req.MoodSituation)
		if !ok {
			return fmt.Errorf("%w: mood situation does not exist", internal.ErrNotFound)
		}

		now := time.Now()
		mood = &internal.Mood{
			UserID:    user.ID,
			Category:  category,
			Situation: situation,
			Title:     req.MoodTitle,
			Reason:    req.MoodReason,
			Date:      moodTimestamp(req.MoodDate, now),
			CreatedAt: now,
		}
		return tx.SaveMood(ctx, mood)
	})
	if err != nil {
		return nil, err
	}
	return mood, nil
}

// UpdateMood changes a mood's title and reason. Checks run in a fixed order:
// fetch the mood, validate the form, then authorize the caller against the owner.
// Empty title or reason input keeps the existing value.
func UpdateMood(ctx context.Context, store storage.Store, moodID int64, req *UpdateMoodRequest) (*internal.Mood, error) {
	var updated *internal.Mood
	err := store.InTx(ctx, func(tx storage.Store) error {
		mood, err := tx.FindMood(ctx, moodID)
		if err != nil {
			return err
		}
		if err := validateForm(req); err != nil {
			return err
		}
		if mood.UserID != req.UserID {
			return fmt.Errorf("%w: no permission to update this mood", internal.ErrForbidden)
		}

		if req.MoodTitle != "" {
			mood.Title = req.MoodTitle
		}
		if req.MoodReason != "" {
			mood.Reason = req.MoodReason
		}
		if err := tx.UpdateMood(ctx, mood); err != nil {
			return err
		}
		updated = mood
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMood removes a mood. Same check order as UpdateMood.
func DeleteMood(ctx context.Context, store storage.Store, moodID int64, req *DeleteMoodRequest) error {
	return store.InTx(ctx, func(tx storage.Store) error {
		mood, err := tx.FindMood(ctx, moodID)
		if err != nil {
			return err
		}
		if err := validateForm(req); err != nil {
			return err
		}
		if mood.UserID != req.UserID {
			return fmt.Errorf("%w: no permission to delete this mood", internal.ErrForbidden)
		}
		return tx.DeleteMood(ctx, mood.ID)
	})
}

func GetMood(ctx context.Context, store storage.Store, moodID int64) (*internal.Mood, error) {
	return store.FindMood(ctx, moodID)
}

func ListMoods(ctx context.Context, store storage.Store, userID int64) ([]internal.Mood, error) {
	return store.ListMoods(ctx, userID)
}
