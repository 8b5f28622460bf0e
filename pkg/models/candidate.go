package models

import "time"

const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

// Stages lists all pipeline stages in board order.
var Stages = []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// ValidStage reports whether s is a known pipeline stage.
func ValidStage(s string) bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// Candidate is an applicant moving through the pipeline. JobID is a weak
// reference used for lookups only; a candidate outlives its job.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Stage string `json:"stage"`
	JobID string `json:"jobId,omitempty"`
}

// TimelineEntry is one immutable event in a candidate's history: either a
// stage change (From/To) or a free-text note. The store assigns monotonic
// ids, so id order matches creation order.
type TimelineEntry struct {
	ID          int64     `json:"id"`
	CandidateID string    `json:"candidateId"`
	TS          time.Time `json:"ts"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Note        string    `json:"note,omitempty"`
}
