package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentflow-hq/talentflow/internal/assessment"
	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

func newAssessments(t *testing.T) (*assessment.Engine, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return assessment.New(s, mirror.NewMemoryMirror()), s
}

func sampleSchema() models.Schema {
	return models.Schema{
		Title: "Frontend Engineer Assessment",
		Sections: []models.Section{{
			ID:    "s1",
			Title: "Basics",
			Questions: []models.Question{
				{ID: "q1", Type: models.QuestionShortText, Label: "Tell us about your React exp", Required: true},
				{ID: "q2", Type: models.QuestionSingleChoice, Label: "Years of exp", Options: []string{"0-1", "1-3", "3-5", "5+"}, Required: true},
			},
		}},
	}
}

func TestGetAssessment_DefaultSchema(t *testing.T) {
	a, _ := newAssessments(t)
	h := NewGetAssessmentHandler(a)

	rec := httptest.NewRecorder()
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/assessments/job-1", nil), "jobId", "job-1")
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeJSON[models.Assessment](t, rec)
	if got.JobID != "job-1" {
		t.Errorf("jobId = %q", got.JobID)
	}
	if got.Schema.Title != assessment.DefaultTitle {
		t.Errorf("title = %q", got.Schema.Title)
	}
	if len(got.Schema.Sections) != 0 {
		t.Errorf("sections = %d, want 0", len(got.Schema.Sections))
	}
}

func TestPutAssessment_RoundTrip(t *testing.T) {
	a, _ := newAssessments(t)
	put := NewPutAssessmentHandler(a)
	get := NewGetAssessmentHandler(a)

	rec := httptest.NewRecorder()
	r := withURLParam(jsonReq(t, http.MethodPut, "/api/assessments/job-1", map[string]any{
		"jobId":  "job-1",
		"schema": sampleSchema(),
	}), "jobId", "job-1")
	put.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r = withURLParam(httptest.NewRequest(http.MethodGet, "/api/assessments/job-1", nil), "jobId", "job-1")
	get.ServeHTTP(rec, r)

	got := decodeJSON[models.Assessment](t, rec)
	want := sampleSchema()
	b1, _ := json.Marshal(got.Schema)
	b2, _ := json.Marshal(want)
	if string(b1) != string(b2) {
		t.Errorf("schema round trip mismatch:\n got %s\nwant %s", b1, b2)
	}
}

func TestPutAssessment_PathWinsOverBody(t *testing.T) {
	a, s := newAssessments(t)
	h := NewPutAssessmentHandler(a)

	rec := httptest.NewRecorder()
	r := withURLParam(jsonReq(t, http.MethodPut, "/api/assessments/job-real", map[string]any{
		"jobId":  "job-bogus",
		"schema": sampleSchema(),
	}), "jobId", "job-real")
	h.ServeHTTP(rec, r)

	if _, err := s.GetAssessment(context.Background(), "job-real"); err != nil {
		t.Errorf("assessment not stored under the path jobId: %v", err)
	}
	if _, err := s.GetAssessment(context.Background(), "job-bogus"); err == nil {
		t.Error("assessment stored under the body jobId")
	}
}

func TestSubmitAssessment_Success(t *testing.T) {
	a, s := newAssessments(t)
	if err := a.SaveSchema(context.Background(), &models.Assessment{JobID: "job-1", Schema: sampleSchema()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	h := NewSubmitAssessmentHandler(a)

	rec := httptest.NewRecorder()
	r := withURLParam(jsonReq(t, http.MethodPost, "/api/assessments/job-1/submit", map[string]any{
		"candidateId": "cand-1",
		"answers":     map[string]any{"q1": "Three years of React", "q2": "3-5"},
	}), "jobId", "job-1")
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	subs, err := s.ListSubmissions(context.Background(), "job-1", "cand-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if subs[0].Payload["q2"] != "3-5" {
		t.Errorf("payload = %v", subs[0].Payload)
	}
}

func TestSubmitAssessment_ValidationError(t *testing.T) {
	a, s := newAssessments(t)
	if err := a.SaveSchema(context.Background(), &models.Assessment{JobID: "job-1", Schema: sampleSchema()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	h := NewSubmitAssessmentHandler(a)

	rec := httptest.NewRecorder()
	r := withURLParam(jsonReq(t, http.MethodPost, "/api/assessments/job-1/submit", map[string]any{
		"candidateId": "cand-1",
		"answers":     map[string]any{"q2": "3-5"},
	}), "jobId", "job-1")
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	msg := decodeErr(t, rec)
	if msg != `Question "Tell us about your React exp" is required` {
		t.Errorf("error = %q", msg)
	}
	subs, _ := s.ListSubmissions(context.Background(), "job-1", "")
	if len(subs) != 0 {
		t.Errorf("submissions = %d after failed validation", len(subs))
	}
}
