package models

const (
	JobStatusActive   = "active"
	JobStatusArchived = "archived"
)

// Job is a single opening in the hiring pipeline. Order is the job's rank on
// the board: across all jobs the order values form the dense range 0..N-1
// with no gaps or duplicates.
type Job struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Slug   string   `json:"slug"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
	Order  int      `json:"order"`
}

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s string) bool {
	return s == JobStatusActive || s == JobStatusArchived
}
