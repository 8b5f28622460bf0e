package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/talentflow-hq/talentflow/internal/ordering"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

// MemoryStore is the authoritative in-memory implementation of Store. Every
// operation runs under one mutex, which is what makes the multi-row reorder
// indivisible relative to concurrent readers.
type MemoryStore struct {
	mu sync.Mutex

	jobs        map[string]*models.Job
	candidates  map[string]*models.Candidate
	timelines   []*models.TimelineEntry
	assessments map[string]*models.Assessment
	submissions []*models.Submission

	nextTimelineID   int64
	nextSubmissionID int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:        make(map[string]*models.Job),
		candidates:  make(map[string]*models.Candidate),
		assessments: make(map[string]*models.Assessment),
	}
}

// --- Jobs ---

func (s *MemoryStore) CreateJob(_ context.Context, job *models.Job) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.Slug == job.Slug {
			return nil, ErrDuplicateSlug
		}
	}

	j := *job
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = models.JobStatusActive
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
	j.Order = len(s.jobs)
	s.jobs[j.ID] = &j

	out := j
	return &out, nil
}

func (s *MemoryStore) GetJob(_ context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *j
	return &out, nil
}

func (s *MemoryStore) UpdateJob(_ context.Context, id string, patch JobPatch) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Slug != nil && *patch.Slug != j.Slug {
		for _, other := range s.jobs {
			if other.ID != id && other.Slug == *patch.Slug {
				return nil, ErrDuplicateSlug
			}
		}
		j.Slug = *patch.Slug
	}
	if patch.Title != nil {
		j.Title = *patch.Title
	}
	if patch.Status != nil {
		j.Status = *patch.Status
	}
	if patch.Tags != nil {
		j.Tags = *patch.Tags
	}
	out := *j
	return &out, nil
}

func (s *MemoryStore) ListJobs(_ context.Context, filter JobFilter) ([]*models.Job, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]*models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].Order < jobs[b].Order })

	filtered := jobs[:0:0]
	search := strings.ToLower(filter.Search)
	for _, j := range jobs {
		if search != "" && !strings.Contains(strings.ToLower(j.Title), search) {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		filtered = append(filtered, j)
	}

	total := len(filtered)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	paged := slicePage(filtered, page, pageSize)

	out := make([]*models.Job, len(paged))
	for i, j := range paged {
		c := *j
		out[i] = &c
	}
	return out, total, nil
}

func (s *MemoryStore) ReorderJobs(_ context.Context, fromOrder, toOrder int) ([]*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]*models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	changed, err := ordering.Reindex(jobs, fromOrder, toOrder)
	if errors.Is(err, ordering.ErrUnmatchedOrder) {
		return nil, ErrInvalidOrder
	}
	if err != nil {
		return nil, err
	}

	out := make([]*models.Job, len(changed))
	for i, j := range changed {
		c := *j
		out[i] = &c
	}
	return out, nil
}

// --- Candidates ---

func (s *MemoryStore) CreateCandidate(_ context.Context, cand *models.Candidate) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *cand
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Stage == "" {
		c.Stage = models.StageApplied
	}
	s.candidates[c.ID] = &c

	out := c
	return &out, nil
}

func (s *MemoryStore) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *MemoryStore) UpdateCandidate(_ context.Context, id string, patch CandidatePatch) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Stage != nil {
		c.Stage = *patch.Stage
	}
	if patch.JobID != nil {
		c.JobID = *patch.JobID
	}
	out := *c
	return &out, nil
}

func (s *MemoryStore) ListCandidates(_ context.Context, filter CandidateFilter) ([]*models.Candidate, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cands := make([]*models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		cands = append(cands, c)
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].ID < cands[b].ID })

	filtered := cands[:0:0]
	search := strings.ToLower(filter.Search)
	for _, c := range cands {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if filter.Stage != "" && c.Stage != filter.Stage {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	paged := slicePage(filtered, page, CandidatePageSize)

	out := make([]*models.Candidate, len(paged))
	for i, c := range paged {
		cc := *c
		out[i] = &cc
	}
	return out, total, nil
}

// --- Timeline ---

func (s *MemoryStore) AppendTimeline(_ context.Context, e *models.TimelineEntry) (*models.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTimelineID++
	entry := *e
	entry.ID = s.nextTimelineID
	s.timelines = append(s.timelines, &entry)

	out := entry
	return &out, nil
}

func (s *MemoryStore) ListTimeline(_ context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.TimelineEntry
	for _, e := range s.timelines {
		if e.CandidateID == candidateID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].TS.Equal(out[b].TS) {
			return out[a].ID < out[b].ID
		}
		return out[a].TS.Before(out[b].TS)
	})
	return out, nil
}

// --- Assessments ---

func (s *MemoryStore) GetAssessment(_ context.Context, jobID string) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assessments[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	return &out, nil
}

func (s *MemoryStore) PutAssessment(_ context.Context, a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *a
	s.assessments[a.JobID] = &c
	return nil
}

// --- Submissions ---

func (s *MemoryStore) AppendSubmission(_ context.Context, sub *models.Submission) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubmissionID++
	entry := *sub
	entry.ID = s.nextSubmissionID
	s.submissions = append(s.submissions, &entry)

	out := entry
	return &out, nil
}

func (s *MemoryStore) ListSubmissions(_ context.Context, jobID, candidateID string) ([]*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Submission
	for _, sub := range s.submissions {
		if jobID != "" && sub.JobID != jobID {
			continue
		}
		if candidateID != "" && sub.CandidateID != candidateID {
			continue
		}
		c := *sub
		out = append(out, &c)
	}
	return out, nil
}

// slicePage returns the 1-indexed page of items, empty past the end.
func slicePage[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
