package bodyweight

import (
	"time"

	"github.com/2beens/liftlog/internal/validation"
	"github.com/2beens/liftlog/pkg/optional"
)

type Entry struct {
	ID        int64
	UserID    string
	WeightKg  float64
	LoggedOn  time.Time
	CreatedAt time.Time
}

// EntryUpdate holds only the fields to change; nil means keep.
type EntryUpdate struct {
	WeightKg *float64
	LoggedOn *time.Time
}

type AddRequest struct {
	WeightKg string `json:"weightKg"`
	LoggedOn string `json:"loggedOn"`
}

// UpdateRequest treats an explicit null like an absent key.
type UpdateRequest struct {
	WeightKg optional.Value[string] `json:"weightKg"`
	LoggedOn optional.Value[string] `json:"loggedOn"`
}

type EntryResponse struct {
	ID        int64     `json:"id"`
	WeightKg  string    `json:"weightKg"`
	LoggedOn  string    `json:"loggedOn"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		WeightKg:  validation.FormatKg(e.WeightKg),
		LoggedOn:  e.LoggedOn.Format(validation.DateLayout),
		CreatedAt: e.CreatedAt,
	}
}

type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
}
