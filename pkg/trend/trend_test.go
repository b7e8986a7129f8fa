package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func snap(date string, loose float64) domain.PriceSnapshot {
	s := domain.PriceSnapshot{Date: day(date)}
	if loose > 0 {
		s.LoosePrice = &loose
	}
	return s
}

func ptr(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current *float64
		history []domain.PriceSnapshot
		want    Direction
	}{
		{
			name:    "no current price",
			current: nil,
			history: []domain.PriceSnapshot{snap("2024-01-01", 10), snap("2024-01-05", 20)},
			want:    Neutral,
		},
		{
			name:    "single history entry",
			current: ptr(20),
			history: []domain.PriceSnapshot{snap("2024-01-01", 10)},
			want:    Neutral,
		},
		{
			name:    "empty history",
			current: ptr(20),
			history: nil,
			want:    Neutral,
		},
		{
			name:    "rising",
			current: ptr(30),
			history: []domain.PriceSnapshot{snap("2024-01-01", 10), snap("2024-01-05", 30)},
			want:    Up,
		},
		{
			name:    "falling",
			current: ptr(5),
			history: []domain.PriceSnapshot{snap("2024-01-01", 10), snap("2024-01-05", 5)},
			want:    Down,
		},
		{
			name:    "flat",
			current: ptr(20),
			history: []domain.PriceSnapshot{snap("2024-01-01", 20), snap("2024-01-05", 20)},
			want:    Neutral,
		},
		{
			name:    "unsorted history sorted by date first",
			current: ptr(30),
			history: []domain.PriceSnapshot{snap("2024-01-05", 30), snap("2024-01-01", 10)},
			want:    Up,
		},
		{
			name:    "entries missing the category are skipped",
			current: ptr(30),
			history: []domain.PriceSnapshot{
				{Date: day("2024-01-01"), CIBPrice: ptr(50)}, // no loose value
				snap("2024-01-02", 10),
				{Date: day("2024-01-03")},
				snap("2024-01-04", 30),
			},
			want: Up,
		},
		{
			name:    "only one entry with the category",
			current: ptr(30),
			history: []domain.PriceSnapshot{
				snap("2024-01-01", 10),
				{Date: day("2024-01-05"), CIBPrice: ptr(99)},
			},
			want: Neutral,
		},
		{
			name:    "zero values do not count as observations",
			current: ptr(30),
			history: []domain.PriceSnapshot{
				{Date: day("2024-01-01"), LoosePrice: ptr(0)},
				snap("2024-01-05", 30),
			},
			want: Neutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.current, tt.history, domain.CategoryLoose))
		})
	}
}

func TestClassify_PerCategory(t *testing.T) {
	t.Parallel()

	history := []domain.PriceSnapshot{
		{Date: day("2024-02-01"), LoosePrice: ptr(10), CIBPrice: ptr(40)},
		{Date: day("2024-02-10"), LoosePrice: ptr(15), CIBPrice: ptr(35)},
	}

	assert.Equal(t, Up, Classify(ptr(15), history, domain.CategoryLoose))
	assert.Equal(t, Down, Classify(ptr(35), history, domain.CategoryCIB))
	assert.Equal(t, Neutral, Classify(ptr(1), history, domain.CategoryGraded))
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	history := []domain.PriceSnapshot{snap("2024-01-05", 30), snap("2024-01-01", 10)}
	Classify(ptr(30), history, domain.CategoryLoose)
	assert.Equal(t, day("2024-01-05"), history[0].Date)
	assert.Equal(t, day("2024-01-01"), history[1].Date)
}
