package reading

import (
	"encoding/json"

	"github.com/masonfox/tome-sub001/internal/entities"
)

// OptionalRating distinguishes three caller intents: field absent (leave the
// rating alone), explicit null (clear it), and a positive value (set it).
// A value of zero is treated as "no rating provided", not as a clear.
type OptionalRating struct {
	Set   bool
	Value *float64
}

func (o *OptionalRating) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o OptionalRating) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// UpdateStatusInput carries a status-transition request.
type UpdateStatusInput struct {
	Status        entities.Status `json:"status"`
	StartedDate   *entities.Date  `json:"started_date,omitempty"`
	CompletedDate *entities.Date  `json:"completed_date,omitempty"`
	Rating        OptionalRating  `json:"rating,omitempty"`
	Review        *string         `json:"review,omitempty"`
}

// StatusResult reports the outcome of UpdateStatus. The archival fields are
// only present when a backward, DNF-reattempt or re-read transition froze
// the previous session.
type StatusResult struct {
	Session               *entities.ReadingSession `json:"session"`
	SessionArchived       bool                     `json:"session_archived,omitempty"`
	ArchivedSessionNumber int                      `json:"archived_session_number,omitempty"`
}

// DNFInput carries an abandonment request.
type DNFInput struct {
	BookID        uint           `json:"book_id"`
	CompletedDate *entities.Date `json:"completed_date,omitempty"`
	Rating        *float64       `json:"rating,omitempty"`
	Review        *string        `json:"review,omitempty"`
}

// DNFResult reports the outcome of MarkAsDNF. RatingUpdated and
// ReviewUpdated surface best-effort enrichment failures without failing the
// abandonment itself; LastProgress prefills the caller's UI with the most
// recent position, when one exists.
type DNFResult struct {
	Session       *entities.ReadingSession `json:"session"`
	RatingUpdated bool                     `json:"rating_updated"`
	ReviewUpdated bool                     `json:"review_updated"`
	LastProgress  *entities.ProgressLog    `json:"last_progress,omitempty"`
}

// DateField names a session date column updatable via UpdateSessionDate.
type DateField string

const (
	DateFieldStarted   DateField = "startedDate"
	DateFieldCompleted DateField = "completedDate"
)
