package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

func newStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	return store.NewMemoryStore()
}

func seedJobs(t *testing.T, s *store.MemoryStore, n int) []*models.Job {
	t.Helper()
	out := make([]*models.Job, n)
	for i := 0; i < n; i++ {
		j, err := s.CreateJob(context.Background(), &models.Job{
			Title: fmt.Sprintf("Job %d", i+1),
			Slug:  fmt.Sprintf("job-%d", i+1),
		})
		require.NoError(t, err)
		out[i] = j
	}
	return out
}

// --- Jobs ---

func TestCreateJob_AssignsDenseOrder(t *testing.T) {
	s := newStore(t)
	jobs := seedJobs(t, s, 3)

	for i, j := range jobs {
		assert.Equal(t, i, j.Order)
		assert.NotEmpty(t, j.ID)
		assert.Equal(t, models.JobStatusActive, j.Status)
	}
}

func TestCreateJob_DuplicateSlug(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.CreateJob(ctx, &models.Job{Title: "First", Slug: "shared"})
	require.NoError(t, err)

	_, err = s.CreateJob(ctx, &models.Job{Title: "Second", Slug: "shared"})
	assert.ErrorIs(t, err, store.ErrDuplicateSlug)

	_, total, err := s.ListJobs(ctx, store.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "failed create must not leave a job behind")
}

func TestGetJob_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateJob_PartialPatch(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jobs := seedJobs(t, s, 1)

	title := "Renamed"
	status := models.JobStatusArchived
	updated, err := s.UpdateJob(ctx, jobs[0].ID, store.JobPatch{Title: &title, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, models.JobStatusArchived, updated.Status)
	assert.Equal(t, "job-1", updated.Slug, "untouched field must survive the patch")
	assert.Equal(t, 0, updated.Order)
}

func TestUpdateJob_SlugCollision(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jobs := seedJobs(t, s, 2)

	slug := "job-1"
	_, err := s.UpdateJob(ctx, jobs[1].ID, store.JobPatch{Slug: &slug})
	assert.ErrorIs(t, err, store.ErrDuplicateSlug)
}

func TestListJobs_FilterAndPaginate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	jobs := seedJobs(t, s, 12)

	archived := models.JobStatusArchived
	_, err := s.UpdateJob(ctx, jobs[3].ID, store.JobPatch{Status: &archived})
	require.NoError(t, err)

	t.Run("title substring is case-insensitive", func(t *testing.T) {
		got, total, err := s.ListJobs(ctx, store.JobFilter{Search: "JOB 1", Page: 1, PageSize: 50})
		require.NoError(t, err)
		// Job 1, Job 10, Job 11, Job 12
		assert.Equal(t, 4, total)
		assert.Len(t, got, 4)
	})

	t.Run("status is exact", func(t *testing.T) {
		got, total, err := s.ListJobs(ctx, store.JobFilter{Status: models.JobStatusArchived, Page: 1, PageSize: 50})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, jobs[3].ID, got[0].ID)
	})

	t.Run("total is the pre-slice count", func(t *testing.T) {
		got, total, err := s.ListJobs(ctx, store.JobFilter{Page: 2, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, got, 5)
		assert.Equal(t, 5, got[0].Order, "page 2 starts after the first pageSize jobs")
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		got, total, err := s.ListJobs(ctx, store.JobFilter{Page: 9, PageSize: 5})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Empty(t, got)
	})

	t.Run("sorted by order ascending", func(t *testing.T) {
		got, _, err := s.ListJobs(ctx, store.JobFilter{Page: 1, PageSize: 50})
		require.NoError(t, err)
		for i, j := range got {
			assert.Equal(t, i, j.Order)
		}
	})
}

func TestReorderJobs_DenseInvariant(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	seedJobs(t, s, 6)

	changed, err := s.ReorderJobs(ctx, 1, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, changed)

	got, _, err := s.ListJobs(ctx, store.JobFilter{Page: 1, PageSize: 50})
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, j := range got {
		assert.False(t, seen[j.Order], "duplicate order %d", j.Order)
		seen[j.Order] = true
		assert.GreaterOrEqual(t, j.Order, 0)
		assert.Less(t, j.Order, 6)
	}
}

func TestReorderJobs_SpecExample(t *testing.T) {
	// Orders [0,1,2,3] for A,B,C,D; moving A from 0 to 2 gives B=0 C=1 A=2 D=3.
	s := newStore(t)
	ctx := context.Background()
	jobs := seedJobs(t, s, 4)

	_, err := s.ReorderJobs(ctx, 0, 2)
	require.NoError(t, err)

	want := []int{2, 0, 1, 3}
	for i, j := range jobs {
		fresh, err := s.GetJob(ctx, j.ID)
		require.NoError(t, err)
		assert.Equal(t, want[i], fresh.Order, "job %d", i+1)
	}
}

func TestReorderJobs_InvalidFromOrder(t *testing.T) {
	s := newStore(t)
	seedJobs(t, s, 3)

	_, err := s.ReorderJobs(context.Background(), 9, 0)
	assert.ErrorIs(t, err, store.ErrInvalidOrder)
}

func TestReorderJobs_NoOpReturnsNothing(t *testing.T) {
	s := newStore(t)
	seedJobs(t, s, 3)

	changed, err := s.ReorderJobs(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

// --- Candidates ---

func TestCreateCandidate_DefaultsStage(t *testing.T) {
	s := newStore(t)

	c, err := s.CreateCandidate(context.Background(), &models.Candidate{Name: "Ada", Email: "ada@mail.com"})
	require.NoError(t, err)
	assert.Equal(t, models.StageApplied, c.Stage)
	assert.NotEmpty(t, c.ID)
}

func TestListCandidates_SearchAndStage(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateCandidate(ctx, &models.Candidate{
			Name:  fmt.Sprintf("Candidate %d", i+1),
			Email: fmt.Sprintf("candidate%d@mail.com", i+1),
			Stage: models.StageScreen,
		})
		require.NoError(t, err)
	}
	_, err := s.CreateCandidate(ctx, &models.Candidate{Name: "Grace Hopper", Email: "grace@navy.mil", Stage: models.StageTech})
	require.NoError(t, err)

	t.Run("search matches name or email", func(t *testing.T) {
		_, total, err := s.ListCandidates(ctx, store.CandidateFilter{Search: "GRACE", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, total)

		_, total, err = s.ListCandidates(ctx, store.CandidateFilter{Search: "@mail.com", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("stage is exact", func(t *testing.T) {
		got, total, err := s.ListCandidates(ctx, store.CandidateFilter{Stage: models.StageTech, Page: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Grace Hopper", got[0].Name)
	})
}

func TestListCandidates_FixedPageSize(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 0; i < store.CandidatePageSize+10; i++ {
		_, err := s.CreateCandidate(ctx, &models.Candidate{Name: fmt.Sprintf("C%d", i)})
		require.NoError(t, err)
	}

	got, total, err := s.ListCandidates(ctx, store.CandidateFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, store.CandidatePageSize+10, total)
	assert.Len(t, got, store.CandidatePageSize)

	got, _, err = s.ListCandidates(ctx, store.CandidateFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

// --- Timeline ---

func TestTimeline_AppendAndSort(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Append out of timestamp order; retrieval sorts by ts ascending.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		_, err := s.AppendTimeline(ctx, &models.TimelineEntry{
			CandidateID: "c1",
			TS:          base.Add(offset),
			Note:        "event",
		})
		require.NoError(t, err)
	}
	_, err := s.AppendTimeline(ctx, &models.TimelineEntry{CandidateID: "other", TS: base})
	require.NoError(t, err)

	got, err := s.ListTimeline(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].TS.Before(got[i-1].TS), "entries out of ts order")
	}
}

func TestTimeline_MonotonicIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a, err := s.AppendTimeline(ctx, &models.TimelineEntry{CandidateID: "c1", TS: time.Now()})
	require.NoError(t, err)
	b, err := s.AppendTimeline(ctx, &models.TimelineEntry{CandidateID: "c1", TS: time.Now()})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

// --- Assessments & submissions ---

func TestAssessment_PutGetRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	saved := &models.Assessment{
		JobID: "job-1",
		Schema: models.Schema{
			Title: "Backend Assessment",
			Sections: []models.Section{{
				ID:    "s1",
				Title: "Go",
				Questions: []models.Question{{
					ID: "q1", Type: models.QuestionNumeric, Label: "Years of Go",
					Required:     true,
					NumericRange: &models.NumericRange{Min: 0, Max: 30},
				}},
			}},
		},
	}
	require.NoError(t, s.PutAssessment(ctx, saved))

	got, err := s.GetAssessment(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestAssessment_Missing(t *testing.T) {
	s := newStore(t)

	_, err := s.GetAssessment(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmissions_AppendAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	sub, err := s.AppendSubmission(ctx, &models.Submission{
		JobID:       "job-1",
		CandidateID: "c1",
		Payload:     models.Answers{"q1": "5"},
		TS:          time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sub.ID)

	byJob, err := s.ListSubmissions(ctx, "job-1", "")
	require.NoError(t, err)
	assert.Len(t, byJob, 1)

	byOther, err := s.ListSubmissions(ctx, "job-2", "")
	require.NoError(t, err)
	assert.Empty(t, byOther)
}
