package workouts

import (
	"math"
	"sort"
	"strings"

	"github.com/2beens/liftlog/internal/validation"
)

const epleyFactor = 0.0333

type E1RMPoint struct {
	Date string  `json:"date"`
	E1RM float64 `json:"e1rm"`
}

// E1RM estimates a one rep max as load / (1 - reps*0.0333). A single is its own max.
// The second result is false when the set cannot contribute.
func E1RM(loadKg float64, reps int) (float64, bool) {
	if math.IsNaN(loadKg) || math.IsInf(loadKg, 0) || reps <= 0 {
		return 0, false
	}
	if reps == 1 {
		return loadKg, loadKg > 0
	}

	denom := 1 - float64(reps)*epleyFactor
	if denom <= 0 {
		return 0, false
	}

	e1rm := loadKg / denom
	if e1rm <= 0 || math.IsInf(e1rm, 0) {
		return 0, false
	}
	return e1rm, true
}

// BestE1RMByDate keeps the best estimate per calendar day, ascending by date.
func BestE1RMByDate(rows []ExerciseSetRow) []E1RMPoint {
	best := map[string]float64{}
	for _, row := range rows {
		e1rm, ok := E1RM(row.LoadKg, row.Reps)
		if !ok {
			continue
		}
		date := row.PerformedOn.Format(validation.DateLayout)
		if current, seen := best[date]; !seen || e1rm > current {
			best[date] = e1rm
		}
	}

	points := make([]E1RMPoint, 0, len(best))
	for date, e1rm := range best {
		points = append(points, E1RMPoint{Date: date, E1RM: e1rm})
	}
	// YYYY-MM-DD sorts lexically in date order
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

var mainLiftKeywords = []string{"squat", "bench", "deadlift"}

// IsMainLift reports whether the exercise belongs on the e1RM chart.
func IsMainLift(exercise string) bool {
	name := strings.ToLower(exercise)
	for _, keyword := range mainLiftKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
