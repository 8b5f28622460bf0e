package mirror

import "strconv"

// TimelineKey renders a timeline entry's autoincrement id as a mirror key.
func TimelineKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// SubmissionKey renders a submission's autoincrement id as a mirror key.
func SubmissionKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
