// Package validation sanitizes user input before it reaches storage.
// Every failure is an *apperrors.ValidationError carrying a user facing message.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/apperrors"
)

const (
	MaxKg            = 999.99
	MaxTitleLen      = 120
	MaxExerciseLen   = 120
	MaxWorkoutNotes  = 1000
	MaxSetNotes      = 500
	MaxReps          = 1000
	MaxRPE           = 10.0
	rpeGridTolerance = 1e-6

	DateLayout = "2006-01-02"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// WeightKg parses a bodyweight, 0 < v <= 999.99, rounded to 2 decimals.
func WeightKg(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewValidation("weight out of range")
	}
	// range applies to the stored value
	v = round2(v)
	if v <= 0 || v > MaxKg {
		return 0, apperrors.NewValidation("weight out of range")
	}
	return v, nil
}

// FormatKg renders a kilogram value with exactly 2 decimals, matching numeric(5,2).
func FormatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Date parses a YYYY-MM-DD calendar date.
func Date(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if !isoDateRegex.MatchString(raw) {
		return time.Time{}, apperrors.NewValidation("invalid date")
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("invalid date")
	}
	return d, nil
}

// DateValue accepts an already parsed date, dropping the time of day.
func DateValue(d time.Time) (time.Time, error) {
	if d.IsZero() {
		return time.Time{}, apperrors.NewValidation("invalid date")
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
}

func Title(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewValidation("give your workout a title")
	}
	if len([]rune(trimmed)) > MaxTitleLen {
		return "", apperrors.NewValidation("workout title is too long")
	}
	return trimmed, nil
}

// Notes returns nil for empty or whitespace-only notes.
func Notes(raw *string, maxLen int) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > maxLen {
		return nil, apperrors.NewValidation("notes should be under %d characters", maxLen)
	}
	return &trimmed, nil
}

// The index based sanitizers below prefix messages with "set N: " (1-based).
// A negative index means a single set outside a collection, no prefix.

func Exercise(raw string, index int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewValidation("%sexercise is required", setPrefix(index))
	}
	if len([]rune(trimmed)) > MaxExerciseLen {
		return "", apperrors.NewValidation("%sexercise name is too long", setPrefix(index))
	}
	return trimmed, nil
}

func LoadKg(v float64, index int) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewValidation("%sload must be between 0 and 999.99 kg", setPrefix(index))
	}
	v = round2(v)
	if v < 0 || v > MaxKg {
		return 0, apperrors.NewValidation("%sload must be between 0 and 999.99 kg", setPrefix(index))
	}
	return v, nil
}

func Reps(v float64, index int) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < 1 || v > MaxReps {
		return 0, apperrors.NewValidation("%sreps must be a whole number between 1 and %d", setPrefix(index), MaxReps)
	}
	return int(v), nil
}

// RPE accepts 0..10 on the half point grid.
func RPE(v float64, index int) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxRPE {
		return 0, apperrors.NewValidation("%sRPE must be between 0 and 10", setPrefix(index))
	}
	if math.Abs(v*2-math.Round(v*2)) > rpeGridTolerance {
		return 0, apperrors.NewValidation("%sRPE must use half-point steps", setPrefix(index))
	}
	return math.Round(v*2) / 2, nil
}

// RequiredRPE is RPE for call sites where every set must carry one.
func RequiredRPE(v *float64, index int) (float64, error) {
	if v == nil {
		return 0, apperrors.NewValidation("%sRPE is required", setPrefix(index))
	}
	return RPE(*v, index)
}

func Sequence(v int, index int) (int, error) {
	if v < 1 {
		return 0, apperrors.NewValidation("%ssequence must be a whole number above 0", setPrefix(index))
	}
	return v, nil
}

func NonEmptySets(count int) error {
	if count == 0 {
		return apperrors.NewValidation("add at least one set")
	}
	return nil
}

func setPrefix(index int) string {
	if index < 0 {
		return ""
	}
	return fmt.Sprintf("set %d: ", index+1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
