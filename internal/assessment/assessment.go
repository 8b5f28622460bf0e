// Package assessment stores per-job question schemas and validates candidate
// submissions against them. Conditional visibility and numeric ranges are
// interpreted from the schema itself, so new question rules extend the data,
// not the code paths.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

// DefaultTitle is the title of the synthesized schema returned for a job
// without a saved assessment.
const DefaultTitle = "New assessment"

// ValidationError reports the first question that failed submission
// validation, in schema order.
type ValidationError struct {
	QuestionID string
	Label      string
	Message    string
}

func (e *ValidationError) Error() string { return e.Message }

// Engine is the assessment engine.
type Engine struct {
	store  store.Store
	mirror mirror.Mirror
	now    func() time.Time
}

// New creates an Engine over the given store and mirror.
func New(s store.Store, m mirror.Mirror) *Engine {
	return &Engine{store: s, mirror: m, now: time.Now}
}

// GetSchema returns the job's assessment, or a synthesized empty one when
// none has been saved. The synthesized default is never persisted.
func (e *Engine) GetSchema(ctx context.Context, jobID string) (*models.Assessment, error) {
	a, err := e.store.GetAssessment(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Assessment{
			JobID:  jobID,
			Schema: models.Schema{Title: DefaultTitle, Sections: []models.Section{}},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SaveSchema overwrites the job's assessment wholesale and mirrors it.
func (e *Engine) SaveSchema(ctx context.Context, a *models.Assessment) error {
	if err := e.store.PutAssessment(ctx, a); err != nil {
		return err
	}
	e.mirrorPut(ctx, mirror.KindAssessment, a.JobID, a)
	return nil
}

// Submit validates answers against the job's schema and, on success, appends
// an immutable submission. A validation failure leaves no trace.
func (e *Engine) Submit(ctx context.Context, jobID, candidateID string, answers models.Answers) (*models.Submission, error) {
	a, err := e.GetSchema(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := ValidateSubmission(a.Schema, answers); err != nil {
		return nil, err
	}

	sub, err := e.store.AppendSubmission(ctx, &models.Submission{
		JobID:       jobID,
		CandidateID: candidateID,
		Payload:     answers,
		TS:          e.now(),
	})
	if err != nil {
		return nil, err
	}
	e.mirrorPut(ctx, mirror.KindSubmission, mirror.SubmissionKey(sub.ID), sub)
	return sub, nil
}

// Visible reports whether the question is shown given the current answers.
// A question without showIf is always visible; with showIf it is visible
// only when the referenced question's answer equals the configured value
// exactly. An unanswered reference never matches.
func Visible(q models.Question, answers models.Answers) bool {
	if q.ShowIf == nil {
		return true
	}
	s, ok := answers[q.ShowIf.QuestionID].(string)
	return ok && s == q.ShowIf.Equals
}

// ValidateSubmission walks the schema in order (sections, then questions)
// and returns the first failing question as a *ValidationError, or nil when
// everything passes. Hidden questions are skipped entirely, so a required
// question gated on an unanswered showIf never blocks.
func ValidateSubmission(schema models.Schema, answers models.Answers) error {
	for _, sec := range schema.Sections {
		for _, q := range sec.Questions {
			if !Visible(q, answers) {
				continue
			}
			answer, answered := answers[q.ID]
			if q.Required && !present(answer) {
				return &ValidationError{
					QuestionID: q.ID,
					Label:      q.Label,
					Message:    fmt.Sprintf("Question %q is required", q.Label),
				}
			}
			if q.Type == models.QuestionNumeric && answered && q.NumericRange != nil {
				// Unparseable input passes through, matching the form's
				// lenient number coercion.
				if v, ok := toNumber(answer); ok && (v < q.NumericRange.Min || v > q.NumericRange.Max) {
					return &ValidationError{
						QuestionID: q.ID,
						Label:      q.Label,
						Message: fmt.Sprintf("%q must be between %s and %s", q.Label,
							formatBound(q.NumericRange.Min), formatBound(q.NumericRange.Max)),
					}
				}
			}
		}
	}
	return nil
}

// present reports whether an answer counts as given: nil, empty strings and
// empty lists do not.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	default:
		return true
	}
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (e *Engine) mirrorPut(ctx context.Context, kind mirror.Kind, key string, entity any) {
	if err := e.mirror.Put(ctx, kind, key, entity); err != nil {
		slog.Warn("mirror write failed", "kind", kind, "key", key, "error", err)
	}
}
