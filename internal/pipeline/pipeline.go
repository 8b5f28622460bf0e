// Package pipeline moves candidates through the hiring stages and keeps
// their immutable timeline. Any stage may follow any other; the engine's job
// is recording the history, not policing the graph.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

const createdNote = "Candidate created"

// Engine is the candidate stage engine.
type Engine struct {
	store  store.Store
	mirror mirror.Mirror
	now    func() time.Time
}

// New creates an Engine over the given store and mirror.
func New(s store.Store, m mirror.Mirror) *Engine {
	return &Engine{store: s, mirror: m, now: time.Now}
}

// CreateCandidate persists a new candidate, defaulting the stage to applied,
// and appends the initial creation timeline entry.
func (e *Engine) CreateCandidate(ctx context.Context, cand *models.Candidate) (*models.Candidate, error) {
	created, err := e.store.CreateCandidate(ctx, cand)
	if err != nil {
		return nil, err
	}
	e.mirrorPut(ctx, mirror.KindCandidate, created.ID, created)

	entry, err := e.store.AppendTimeline(ctx, &models.TimelineEntry{
		CandidateID: created.ID,
		TS:          e.now(),
		To:          created.Stage,
		Note:        createdNote,
	})
	if err != nil {
		return nil, err
	}
	e.mirrorPut(ctx, mirror.KindTimeline, mirror.TimelineKey(entry.ID), entry)

	return created, nil
}

// Update applies a partial candidate update. When the patch carries a stage
// different from the candidate's current one, a single stage-change timeline
// entry is appended; a same-stage patch appends nothing.
func (e *Engine) Update(ctx context.Context, id string, patch store.CandidatePatch) (*models.Candidate, error) {
	prev, err := e.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := e.store.UpdateCandidate(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	e.mirrorPut(ctx, mirror.KindCandidate, updated.ID, updated)

	if patch.Stage != nil && *patch.Stage != prev.Stage {
		entry, err := e.store.AppendTimeline(ctx, &models.TimelineEntry{
			CandidateID: id,
			TS:          e.now(),
			From:        prev.Stage,
			To:          *patch.Stage,
		})
		if err != nil {
			return nil, err
		}
		e.mirrorPut(ctx, mirror.KindTimeline, mirror.TimelineKey(entry.ID), entry)
	}

	return updated, nil
}

// Transition moves a candidate to newStage. Shorthand for a stage-only Update.
func (e *Engine) Transition(ctx context.Context, id, newStage string) (*models.Candidate, error) {
	return e.Update(ctx, id, store.CandidatePatch{Stage: &newStage})
}

// Timeline returns the candidate's history ordered by timestamp ascending.
// Returns store.ErrNotFound for an unknown candidate.
func (e *Engine) Timeline(ctx context.Context, candidateID string) ([]*models.TimelineEntry, error) {
	if _, err := e.store.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return e.store.ListTimeline(ctx, candidateID)
}

// mirrorPut is the best-effort write-through: a mirror failure is logged and
// never unwinds the in-memory mutation.
func (e *Engine) mirrorPut(ctx context.Context, kind mirror.Kind, key string, entity any) {
	if err := e.mirror.Put(ctx, kind, key, entity); err != nil {
		slog.Warn("mirror write failed", "kind", kind, "key", key, "error", err)
	}
}
