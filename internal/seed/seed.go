// Package seed fills an empty store with demo data: a board of jobs, a large
// candidate pool, and a few assessments worth opening in the builder.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

var seedTags = []string{"remote", "full-time"}

// Seeder writes demo data through the store and mirror.
type Seeder struct {
	store  store.Store
	mirror mirror.Mirror
	rng    *rand.Rand
}

// New creates a Seeder with a wall-clock seed.
func New(s store.Store, m mirror.Mirror) *Seeder {
	return NewSeeded(s, m, time.Now().UnixNano())
}

// NewSeeded creates a Seeder with an explicit seed for reproducible data.
func NewSeeded(s store.Store, m mirror.Mirror, seed int64) *Seeder {
	return &Seeder{store: s, mirror: m, rng: rand.New(rand.NewSource(seed))}
}

// Run seeds the given number of jobs and candidates plus three assessments.
// A store that already holds jobs is left alone.
func (sd *Seeder) Run(ctx context.Context, jobs, candidates int) error {
	_, total, err := sd.store.ListJobs(ctx, store.JobFilter{Page: 1, PageSize: 1})
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if total > 0 {
		slog.Info("store already seeded", "jobs", total)
		return nil
	}

	created := make([]*models.Job, 0, jobs)
	for i := 0; i < jobs; i++ {
		tags := seedTags
		if sd.rng.Float64() <= 0.5 {
			tags = seedTags[:1]
		}
		job, err := sd.store.CreateJob(ctx, &models.Job{
			Title:  fmt.Sprintf("Job %d", i+1),
			Slug:   fmt.Sprintf("job-%d", i+1),
			Status: sd.randomStatus(),
			Tags:   tags,
		})
		if err != nil {
			return fmt.Errorf("seed job %d: %w", i+1, err)
		}
		sd.mirrorPut(ctx, mirror.KindJob, job.ID, job)
		created = append(created, job)
	}

	for i := 0; i < candidates; i++ {
		cand, err := sd.store.CreateCandidate(ctx, &models.Candidate{
			Name:  fmt.Sprintf("Candidate %d", i+1),
			Email: fmt.Sprintf("candidate%d@mail.com", i+1),
			Stage: models.Stages[sd.rng.Intn(len(models.Stages))],
			JobID: sd.randomJobID(created),
		})
		if err != nil {
			return fmt.Errorf("seed candidate %d: %w", i+1, err)
		}
		sd.mirrorPut(ctx, mirror.KindCandidate, cand.ID, cand)
	}

	for i, a := range sampleAssessments(created) {
		if err := sd.store.PutAssessment(ctx, a); err != nil {
			return fmt.Errorf("seed assessment %d: %w", i+1, err)
		}
		sd.mirrorPut(ctx, mirror.KindAssessment, a.JobID, a)
	}

	slog.Info("store seeded", "jobs", jobs, "candidates", candidates)
	return nil
}

func (sd *Seeder) randomStatus() string {
	if sd.rng.Float64() > 0.2 {
		return models.JobStatusActive
	}
	return models.JobStatusArchived
}

func (sd *Seeder) randomJobID(jobs []*models.Job) string {
	if len(jobs) == 0 {
		return ""
	}
	return jobs[sd.rng.Intn(len(jobs))].ID
}

// sampleAssessments returns up to three schemas attached to the first seeded
// jobs: one populated form and two blank starts.
func sampleAssessments(jobs []*models.Job) []*models.Assessment {
	var out []*models.Assessment
	if len(jobs) > 0 {
		out = append(out, &models.Assessment{
			JobID: jobs[0].ID,
			Schema: models.Schema{
				Title: "Frontend Engineer Assessment",
				Sections: []models.Section{{
					ID:    "s1",
					Title: "Basics",
					Questions: []models.Question{
						{ID: "q1", Type: models.QuestionShortText, Label: "Tell us about your React exp", Required: true},
						{ID: "q2", Type: models.QuestionSingleChoice, Label: "Years of exp", Options: []string{"0-1", "1-3", "3-5", "5+"}, Required: true},
						{ID: "q3", Type: models.QuestionLongText, Label: "Describe a complex UI you built", Required: false},
					},
				}},
			},
		})
	}
	if len(jobs) > 1 {
		out = append(out, &models.Assessment{
			JobID:  jobs[1].ID,
			Schema: models.Schema{Title: "PM Assessment", Sections: []models.Section{}},
		})
	}
	if len(jobs) > 2 {
		out = append(out, &models.Assessment{
			JobID:  jobs[2].ID,
			Schema: models.Schema{Title: "DS Assessment", Sections: []models.Section{}},
		})
	}
	return out
}

func (sd *Seeder) mirrorPut(ctx context.Context, kind mirror.Kind, key string, entity any) {
	if err := sd.mirror.Put(ctx, kind, key, entity); err != nil {
		slog.Warn("mirror write failed", "kind", kind, "key", key, "error", err)
	}
}
