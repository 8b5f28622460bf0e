// Package mirror is the durable write-through layer behind the in-memory
// collection store. Every successful mutation is mirrored here keyed by the
// entity's natural key. The mirror is best-effort: a failed Put is logged by
// the caller and never rolls back the in-memory mutation.
package mirror

import "context"

// Kind names one of the mirrored entity tables.
type Kind string

const (
	KindJob        Kind = "jobs"
	KindCandidate  Kind = "candidates"
	KindTimeline   Kind = "timelines"
	KindAssessment Kind = "assessments"
	KindSubmission Kind = "submissions"
)

// Mirror is the durable persistence interface. Put is an idempotent upsert.
// Implementations must be safe for concurrent use.
type Mirror interface {
	Put(ctx context.Context, kind Kind, key string, entity any) error
	Ping(ctx context.Context) error
	Close() error
}
