package review

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/keylock"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_ConcurrentReviewsConverge(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	tutors := repository.NewTutorRepository(db)
	students := repository.NewStudentRepository(db)
	reviews := repository.NewReviewRepository(db)

	tutor := &domain.Tutor{
		Name: "Ada", Username: "ada", Email: "ada@example.com", PasswordHash: "x", Price: 10,
		Availability: domain.Availability{{Day: domain.Monday, Slots: []domain.TimeSlot{{StartTime: "09:00", EndTime: "10:00"}}}},
	}
	require.NoError(t, tutors.Create(ctx, tutor))

	agg := NewAggregator(reviews, keylock.NewLocal())
	svc := NewService(reviews, agg, tutors, nil, false, nil)

	const n = 12
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		s := &domain.Student{
			Name: fmt.Sprintf("s%d", i), Username: fmt.Sprintf("s%d", i),
			Email: fmt.Sprintf("s%d@example.com", i), PasswordHash: "x",
		}
		require.NoError(t, students.Create(ctx, s))
		ids[i] = s.ID
	}

	var wg sync.WaitGroup
	var sum int
	for i := 0; i < n; i++ {
		score := i%5 + 1
		sum += score
		wg.Add(1)
		go func(studentID string, score int) {
			defer wg.Done()
			_, err := svc.Create(ctx, studentID, CreateReviewRequest{TutorID: tutor.ID, Rating: score})
			assert.NoError(t, err)
		}(ids[i], score)
	}
	wg.Wait()

	stored, err := tutors.GetByID(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), stored.Rating.Total)
	assert.InDelta(t, float64(sum)/n, stored.Rating.Average, 1e-9)

	again, err := agg.Recompute(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Rating, again)
}
