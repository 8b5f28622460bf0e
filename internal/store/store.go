package store

import (
	"context"
	"errors"

	"github.com/talentflow-hq/talentflow/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateSlug = errors.New("slug must be unique")
var ErrInvalidOrder = errors.New("no job at fromOrder")

// CandidatePageSize is the fixed page size for candidate listings.
const CandidatePageSize = 50

// Store is the data access interface. All collection operations go through
// here. A single call is atomic relative to every other call: no reader
// observes a half-applied mutation, including the multi-row reorder.
type Store interface {
	// Jobs. CreateJob assigns the id (when absent) and the next dense order
	// rank, and rejects a slug already held by another job.
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	UpdateJob(ctx context.Context, id string, patch JobPatch) (*models.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, int, error)
	// ReorderJobs moves the job currently at fromOrder to toOrder, shifting
	// the jobs in between, and returns every job whose order changed.
	ReorderJobs(ctx context.Context, fromOrder, toOrder int) ([]*models.Job, error)

	// Candidates.
	CreateCandidate(ctx context.Context, c *models.Candidate) (*models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, id string, patch CandidatePatch) (*models.Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*models.Candidate, int, error)

	// Timeline entries are append-only; the store assigns monotonic ids.
	AppendTimeline(ctx context.Context, e *models.TimelineEntry) (*models.TimelineEntry, error)
	ListTimeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error)

	// Assessments, one per job, overwritten wholesale on save.
	GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error)
	PutAssessment(ctx context.Context, a *models.Assessment) error

	// Submissions are append-only; the store assigns monotonic ids.
	AppendSubmission(ctx context.Context, s *models.Submission) (*models.Submission, error)
	ListSubmissions(ctx context.Context, jobID, candidateID string) ([]*models.Submission, error)
}

// JobFilter selects and paginates jobs. Search matches the title
// case-insensitively; Status matches exactly. Page is 1-indexed.
type JobFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// CandidateFilter selects and paginates candidates. Search matches name or
// email case-insensitively; Stage matches exactly. Page size is fixed at
// CandidatePageSize.
type CandidateFilter struct {
	Search string
	Stage  string
	Page   int
}

// JobPatch is a partial job update. Nil fields are left untouched.
type JobPatch struct {
	Title  *string
	Slug   *string
	Status *string
	Tags   *[]string
}

// CandidatePatch is a partial candidate update. Nil fields are left untouched.
type CandidatePatch struct {
	Name  *string
	Email *string
	Stage *string
	JobID *string
}
