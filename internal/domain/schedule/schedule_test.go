package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiresOn_Daily(t *testing.T) {
	s := &Schedule{Frequency: FrequencyDaily}
	assert.True(t, s.FiresOn("Mon", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.FiresOn("Sun", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
}

func TestFiresOn_Custom(t *testing.T) {
	s := &Schedule{Frequency: FrequencyCustom, Days: []string{"Mon", "Wed"}}
	assert.True(t, s.FiresOn("Mon", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, s.FiresOn("Tue", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.FiresOn("Wed", time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))

	// A CUSTOM schedule without a day set never fires.
	empty := &Schedule{Frequency: FrequencyCustom}
	assert.False(t, empty.FiresOn("Mon", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
}

func TestFiresOn_Alternate(t *testing.T) {
	s := &Schedule{
		Frequency: FrequencyAlternate,
		CreatedAt: time.Date(2024, 3, 1, 14, 45, 0, 0, time.UTC),
	}
	assert.True(t, s.FiresOn("Fri", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)), "anchor day fires")
	assert.False(t, s.FiresOn("Sat", time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)))
	assert.True(t, s.FiresOn("Sun", time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)))
	assert.False(t, s.FiresOn("Mon", time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)))
	// Cadence holds far from the anchor too.
	assert.True(t, s.FiresOn("Sun", time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC)))
}

func TestFiresOn_AlternateAnchorsToEvaluationZone(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}

	// 2024-03-01 20:00 UTC is already 2024-03-02 01:30 in Kolkata: the
	// cadence must anchor to Mar 2 there, whatever zone the store handed
	// CreatedAt back in.
	utcCreated := &Schedule{
		Frequency: FrequencyAlternate,
		CreatedAt: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
	}
	istCreated := &Schedule{
		Frequency: FrequencyAlternate,
		CreatedAt: time.Date(2024, 3, 2, 1, 30, 0, 0, ist),
	}

	for _, s := range []*Schedule{utcCreated, istCreated} {
		assert.True(t, s.FiresOn("Sat", time.Date(2024, 3, 2, 8, 0, 0, 0, ist)), "anchor day fires")
		assert.False(t, s.FiresOn("Sun", time.Date(2024, 3, 3, 8, 0, 0, 0, ist)))
		assert.True(t, s.FiresOn("Mon", time.Date(2024, 3, 4, 8, 0, 0, 0, ist)))
	}
}
