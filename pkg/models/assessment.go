package models

import "time"

const (
	QuestionShortText    = "short-text"
	QuestionLongText     = "long-text"
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multi-choice"
	QuestionNumeric      = "numeric"
	QuestionFile         = "file"
)

// ShowIf gates a question's visibility on another question's answer. The
// question is shown only when the referenced answer equals Equals exactly.
type ShowIf struct {
	QuestionID string `json:"questionId"`
	Equals     string `json:"equals"`
}

// NumericRange bounds a numeric question's answer, inclusive on both ends.
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Question is one form field in an assessment. Options applies to choice
// types; ShowIf and NumericRange are optional refinements.
type Question struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Label        string        `json:"label"`
	Required     bool          `json:"required"`
	Options      []string      `json:"options,omitempty"`
	ShowIf       *ShowIf       `json:"showIf,omitempty"`
	NumericRange *NumericRange `json:"numericRange,omitempty"`
}

// Section groups questions under a heading.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Schema is the full question form for one job's assessment.
type Schema struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Assessment ties a schema to a job. One assessment per job; saves overwrite
// the schema wholesale.
type Assessment struct {
	JobID  string `json:"jobId"`
	Schema Schema `json:"schema"`
}

// Answers maps question id to the candidate's answer: a string, a string
// slice for multi-choice, or a file marker.
type Answers map[string]any

// Submission is one completed assessment run. Append-only; never mutated.
type Submission struct {
	ID          int64     `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	Payload     Answers   `json:"payload"`
	TS          time.Time `json:"ts"`
}
