package memory

import (
	"context"
	"testing"

	"medicine_reminder/internal/domain/schedule"
	idb "medicine_reminder/internal/infra/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepo_OneSchedulePerMedicine(t *testing.T) {
	repo := NewScheduleRepo()
	ctx := context.Background()

	first := &schedule.Schedule{UserID: 1, MedicineID: 2, Times: []string{"08:00"}, Frequency: schedule.FrequencyDaily}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &schedule.Schedule{UserID: 1, MedicineID: 2, Times: []string{"20:00"}, Frequency: schedule.FrequencyDaily})
	assert.ErrorIs(t, err, idb.ErrDuplicateSchedule)

	scheds, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, scheds, 1)
	assert.Equal(t, []string{"08:00"}, scheds[0].Times)

	// A different medicine is a different slot.
	require.NoError(t, repo.Create(ctx, &schedule.Schedule{UserID: 1, MedicineID: 3, Times: []string{"09:00"}, Frequency: schedule.FrequencyDaily}))

	// Deleting frees the medicine for a new schedule.
	require.NoError(t, repo.Delete(ctx, 1, first.ID))
	require.NoError(t, repo.Create(ctx, &schedule.Schedule{UserID: 1, MedicineID: 2, Times: []string{"10:00"}, Frequency: schedule.FrequencyDaily}))
}
