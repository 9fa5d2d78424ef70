package review

import (
	"context"
	"fmt"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/keylock"
)

// Aggregator keeps a tutor's rating equal to the mean of their reviews.
// Recomputations for the same tutor never overlap.
type Aggregator struct {
	store  RatingStore
	locker keylock.Locker
}

func NewAggregator(store RatingStore, locker keylock.Locker) *Aggregator {
	return &Aggregator{store: store, locker: locker}
}

func ratingLockKey(tutorID string) string {
	return "rating:" + tutorID
}

// Recompute recounts the full review set of the tutor. Calling it again
// without review changes yields the same rating.
func (a *Aggregator) Recompute(ctx context.Context, tutorID string) (domain.Rating, error) {
	unlock, err := a.locker.Lock(ctx, ratingLockKey(tutorID))
	if err != nil {
		return domain.Rating{}, fmt.Errorf("lock tutor rating: %w", err)
	}
	defer unlock()

	return a.store.RecomputeTutorRating(ctx, tutorID)
}
