// Package ordering implements the dense-rank reindex used when a job is
// dragged to a new position on the board.
package ordering

import (
	"errors"

	"github.com/talentflow-hq/talentflow/pkg/models"
)

var ErrUnmatchedOrder = errors.New("no job at fromOrder")

// Reindex moves the job whose Order equals fromOrder to toOrder, shifting
// every job between them by one so the order values stay the contiguous
// range 0..N-1. Jobs outside the affected range are untouched. The slice is
// mutated in place; the returned slice holds every job whose Order changed,
// the moved job included. Moving a job onto its own position is a no-op and
// returns an empty result.
func Reindex(jobs []*models.Job, fromOrder, toOrder int) ([]*models.Job, error) {
	var moving *models.Job
	for _, j := range jobs {
		if j.Order == fromOrder {
			moving = j
			break
		}
	}
	if moving == nil {
		return nil, ErrUnmatchedOrder
	}
	if fromOrder == toOrder {
		return []*models.Job{}, nil
	}

	changed := make([]*models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j == moving {
			continue
		}
		switch {
		case fromOrder < toOrder && j.Order > fromOrder && j.Order <= toOrder:
			j.Order--
			changed = append(changed, j)
		case fromOrder > toOrder && j.Order >= toOrder && j.Order < fromOrder:
			j.Order++
			changed = append(changed, j)
		}
	}
	moving.Order = toOrder
	changed = append(changed, moving)
	return changed, nil
}
