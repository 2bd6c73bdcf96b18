package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"medicine_reminder/internal/domain/intake"
	idb "medicine_reminder/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeRepo_SlotUniquenessUnderConcurrency(t *testing.T) {
	repo := NewIntakeRepo()
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &intake.Log{
				UserID: 1, MedicineID: 2, Date: date, Time: "08:00", Status: intake.StatusTaken,
			})
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, dupCount int
	for err := range errs {
		switch err {
		case nil:
			okCount++
		case idb.ErrDuplicateIntake:
			dupCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactly one writer wins the slot")
	assert.Equal(t, writers-1, dupCount)

	logs, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestIntakeRepo_DistinctSlotsCoexist(t *testing.T) {
	repo := NewIntakeRepo()
	ctx := context.Background()
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &intake.Log{UserID: 1, MedicineID: 2, Date: date, Time: "08:00", Status: intake.StatusTaken}))
	require.NoError(t, repo.Create(ctx, &intake.Log{UserID: 1, MedicineID: 2, Date: date, Time: "20:00", Status: intake.StatusMissed}))
	require.NoError(t, repo.Create(ctx, &intake.Log{UserID: 1, MedicineID: 3, Date: date, Time: "08:00", Status: intake.StatusTaken}))
	require.NoError(t, repo.Create(ctx, &intake.Log{UserID: 2, MedicineID: 2, Date: date, Time: "08:00", Status: intake.StatusTaken}))
	require.NoError(t, repo.Create(ctx, &intake.Log{UserID: 1, MedicineID: 2, Date: date.AddDate(0, 0, 1), Time: "08:00", Status: intake.StatusTaken}))

	logs, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, logs, 4)
}

func TestIntakeRepo_RangeAndDateQueries(t *testing.T) {
	repo := NewIntakeRepo()
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		require.NoError(t, repo.Create(ctx, &intake.Log{
			UserID: 1, MedicineID: 2,
			Date: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC), Time: "08:00", Status: intake.StatusTaken,
		}))
	}

	byDate, err := repo.ListByDate(ctx, 1, time.Date(2024, 3, 3, 15, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, byDate, 1, "time-of-day part of the query date is ignored")

	inRange, err := repo.ListByRange(ctx, 1,
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inRange, 3)
	assert.Equal(t, "2024-03-02", inRange[0].Date.Format("2006-01-02"), "range results ascend by date")
}
