package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"mockmate/internal/answers"
	"mockmate/internal/config"
	"mockmate/internal/guest"
	"mockmate/internal/model"
	"mockmate/internal/transcript"
)

type envelope struct {
	Success bool                   `json:"success"`
	Notice  string                 `json:"notice"`
	Error   string                 `json:"error"`
	Data    map[string]interface{} `json:"data"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	generateQuestions = func(ctx context.Context, category string, n int) ([]model.Question, error) {
		qs := make([]model.Question, n)
		for i := range qs {
			qs[i] = model.Question{
				ID:       fmt.Sprintf("q%d", i+1),
				Question: fmt.Sprintf("%s question %d?", category, i+1),
				Answer:   fmt.Sprintf("reference answer %d", i+1),
			}
		}
		return qs, nil
	}
	generateSingleQuestion = func(ctx context.Context, category string) (string, error) {
		return "Tell me about yourself as a " + category + ".", nil
	}
	generateFeedback = func(ctx context.Context, question, answer string) (model.Feedback, error) {
		return model.Feedback{Text: "Solid answer, add a concrete example."}, nil
	}

	source, err := transcript.NewSource()
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	InitAnswerRepository(answers.NewMemoryRepository())
	InitEngine(&config.Interview{
		Categories:          []string{"Frontend Developer", "Backend Developer"},
		QuestionsPerSession: 3,
		MinGuestAnswerLen:   10,
	}, source, guest.NewMemoryStore(time.Hour))

	r := gin.New()
	RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, headers map[string]string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func asUser(id string) map[string]string { return map[string]string{"X-User-ID": id} }

func createTestInterview(t *testing.T, r *gin.Engine, user string) string {
	t.Helper()
	code, env := doJSON(t, r, http.MethodPost, "/api/v1/interviews", asUser(user),
		gin.H{"category": "Frontend Developer"})
	if code != http.StatusOK {
		t.Fatalf("create interview = %d (%s)", code, env.Error)
	}
	id, _ := env.Data["session_id"].(string)
	if id == "" {
		t.Fatal("create interview returned no session_id")
	}
	return id
}

func TestCreateInterviewRequiresIdentity(t *testing.T) {
	r := setupRouter(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/v1/interviews", nil,
		gin.H{"category": "Frontend Developer"})
	if code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without X-User-ID", code)
	}
	if env.Success {
		t.Error("response must not report success")
	}
}

func TestCreateInterviewRejectsUnknownCategory(t *testing.T) {
	r := setupRouter(t)

	code, env := doJSON(t, r, http.MethodPost, "/api/v1/interviews", asUser("u1"),
		gin.H{"category": "Astronaut"})
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for unknown category", code)
	}
	if !strings.Contains(env.Error, "Astronaut") {
		t.Errorf("error = %q, want it to name the category", env.Error)
	}
}

func TestInterviewIsScopedToItsOwner(t *testing.T) {
	r := setupRouter(t)
	id := createTestInterview(t, r, "owner")

	code, _ := doJSON(t, r, http.MethodGet, "/api/v1/interviews/"+id, asUser("intruder"), nil)
	if code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for another user's session", code)
	}

	code, _ = doJSON(t, r, http.MethodGet, "/api/v1/interviews/missing", asUser("owner"), nil)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown session", code)
	}
}

func TestSaveFlowAndSubmissionGate(t *testing.T) {
	r := setupRouter(t)
	id := createTestInterview(t, r, "u1")
	base := "/api/v1/interviews/" + id

	// Saving with no text must be rejected without changing anything.
	code, env := doJSON(t, r, http.MethodPost, base+"/questions/q1/save", asUser("u1"), nil)
	if code != http.StatusBadRequest {
		t.Fatalf("empty save = %d (%s), want 400", code, env.Error)
	}

	// Draft then save q1.
	code, _ = doJSON(t, r, http.MethodPut, base+"/questions/q1/draft", asUser("u1"), gin.H{"text": "my first answer"})
	if code != http.StatusOK {
		t.Fatalf("draft = %d", code)
	}
	code, env = doJSON(t, r, http.MethodPost, base+"/questions/q1/save", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("save = %d (%s)", code, env.Error)
	}
	if env.Notice != "Your answer has been saved" {
		t.Errorf("notice = %q", env.Notice)
	}
	if got := env.Data["saved_count"].(float64); got != 1 {
		t.Errorf("saved_count = %v, want 1", got)
	}

	// Saving again is absorbed, not duplicated.
	code, env = doJSON(t, r, http.MethodPost, base+"/questions/q1/save", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("repeat save = %d", code)
	}
	if env.Notice != "This answer was already saved" {
		t.Errorf("repeat notice = %q", env.Notice)
	}

	// Submit is rejected while q2 and q3 are unsaved.
	code, env = doJSON(t, r, http.MethodPost, base+"/submit", asUser("u1"), nil)
	if code != http.StatusBadRequest {
		t.Fatalf("early submit = %d, want 400", code)
	}
	if !strings.Contains(env.Error, "1 of 3 saved") {
		t.Errorf("submit error = %q, want the saved count", env.Error)
	}

	for _, q := range []string{"q2", "q3"} {
		doJSON(t, r, http.MethodPut, base+"/questions/"+q+"/draft", asUser("u1"), gin.H{"text": "answer for " + q})
		code, env = doJSON(t, r, http.MethodPost, base+"/questions/"+q+"/save", asUser("u1"), nil)
		if code != http.StatusOK {
			t.Fatalf("save %s = %d (%s)", q, code, env.Error)
		}
	}

	code, env = doJSON(t, r, http.MethodPost, base+"/submit", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("final submit = %d (%s)", code, env.Error)
	}
	if env.Notice != "All answers submitted successfully!" {
		t.Errorf("submit notice = %q", env.Notice)
	}
	if ref, _ := env.Data["stage_ref"].(string); !strings.HasSuffix(ref, "/feedback") {
		t.Errorf("stage_ref = %q, want a feedback stage reference", ref)
	}

	// The persisted answers back the feedback stage.
	code, env = doJSON(t, r, http.MethodGet, base+"/answers", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("list answers = %d", code)
	}
	if got := env.Data["count"].(float64); got != 3 {
		t.Errorf("persisted answers = %v, want 3", got)
	}
}

func TestEditAfterSaveReopensSubmissionGate(t *testing.T) {
	r := setupRouter(t)
	id := createTestInterview(t, r, "u1")
	base := "/api/v1/interviews/" + id

	for _, q := range []string{"q1", "q2", "q3"} {
		doJSON(t, r, http.MethodPut, base+"/questions/"+q+"/draft", asUser("u1"), gin.H{"text": "done"})
		doJSON(t, r, http.MethodPost, base+"/questions/"+q+"/save", asUser("u1"), nil)
	}

	// An edit after saving flips the answer back to unsaved.
	doJSON(t, r, http.MethodPut, base+"/questions/q2/draft", asUser("u1"), gin.H{"text": "revised"})

	code, env := doJSON(t, r, http.MethodPost, base+"/submit", asUser("u1"), nil)
	if code != http.StatusBadRequest {
		t.Fatalf("submit after edit = %d, want 400", code)
	}
	if !strings.Contains(env.Error, "2 of 3 saved") {
		t.Errorf("submit error = %q, want 2 of 3", env.Error)
	}
}

func TestRecordingSegmentsBuildTheDraft(t *testing.T) {
	r := setupRouter(t)
	id := createTestInterview(t, r, "u1")
	base := "/api/v1/interviews/" + id

	code, _ := doJSON(t, r, http.MethodPost, base+"/recording/start", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("start recording = %d", code)
	}

	code, env := doJSON(t, r, http.MethodPost, base+"/recording/segments", asUser("u1"), gin.H{
		"segments": []gin.H{
			{"text": "spoken", "final": true},
			{"text": "ans", "final": false},
			{"text": "answer", "final": true},
		},
	})
	if code != http.StatusOK {
		t.Fatalf("push segments = %d (%s)", code, env.Error)
	}
	if got := env.Data["transcript"].(string); got != "spoken answer" {
		t.Errorf("transcript = %q, want %q", got, "spoken answer")
	}

	code, env = doJSON(t, r, http.MethodPost, base+"/recording/stop", asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("stop recording = %d", code)
	}

	// The finals landed on the active question's draft.
	code, env = doJSON(t, r, http.MethodGet, base, asUser("u1"), nil)
	if code != http.StatusOK {
		t.Fatalf("get interview = %d", code)
	}
	answersData := env.Data["answers"].(map[string]interface{})
	q1 := answersData["q1"].(map[string]interface{})
	if got := q1["text"].(string); got != "spoken answer" {
		t.Errorf("q1 draft = %q, want the transcript", got)
	}

	// Segments after stop are rejected.
	code, _ = doJSON(t, r, http.MethodPost, base+"/recording/segments", asUser("u1"), gin.H{
		"segments": []gin.H{{"text": "late", "final": true}},
	})
	if code != http.StatusConflict {
		t.Errorf("segments after stop = %d, want 409", code)
	}
}

func TestManualEditConflictsWithRecording(t *testing.T) {
	r := setupRouter(t)
	id := createTestInterview(t, r, "u1")
	base := "/api/v1/interviews/" + id

	doJSON(t, r, http.MethodPost, base+"/recording/start", asUser("u1"), nil)

	code, _ := doJSON(t, r, http.MethodPut, base+"/questions/q1/draft", asUser("u1"), gin.H{"text": "typed"})
	if code != http.StatusConflict {
		t.Errorf("draft while recording = %d, want 409", code)
	}

	// Another question's draft is untouched by the recording pass.
	code, _ = doJSON(t, r, http.MethodPut, base+"/questions/q2/draft", asUser("u1"), gin.H{"text": "typed"})
	if code != http.StatusOK {
		t.Errorf("draft on idle question = %d, want 200", code)
	}
}

func TestGuestFlow(t *testing.T) {
	r := setupRouter(t)
	hdr := map[string]string{"X-Guest-Token": "tab-1"}

	// Guest endpoints need a token, not an account.
	code, _ := doJSON(t, r, http.MethodGet, "/api/v1/guest/session", nil, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("session without token = %d, want 400", code)
	}

	// Feedback before any question exists.
	code, env := doJSON(t, r, http.MethodPost, "/api/v1/guest/feedback", hdr, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("premature feedback = %d, want 400", code)
	}
	if !strings.Contains(env.Error, "record an answer first") {
		t.Errorf("error = %q", env.Error)
	}

	code, env = doJSON(t, r, http.MethodPost, "/api/v1/guest/question", hdr,
		gin.H{"category": "Backend Developer"})
	if code != http.StatusOK {
		t.Fatalf("generate question = %d (%s)", code, env.Error)
	}
	question := env.Data["question"].(string)

	// Too-short answers are rejected before any AI call.
	doJSON(t, r, http.MethodPut, "/api/v1/guest/answer", hdr, gin.H{"text": "short"})
	code, env = doJSON(t, r, http.MethodPost, "/api/v1/guest/feedback", hdr, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("short-answer feedback = %d, want 400", code)
	}
	if !strings.Contains(env.Error, "at least 10 characters") {
		t.Errorf("error = %q", env.Error)
	}

	doJSON(t, r, http.MethodPut, "/api/v1/guest/answer", hdr,
		gin.H{"text": "a long enough answer about systems"})
	code, env = doJSON(t, r, http.MethodPost, "/api/v1/guest/feedback", hdr, nil)
	if code != http.StatusOK {
		t.Fatalf("feedback = %d (%s)", code, env.Error)
	}

	// The snapshot survives a "reload" of the same token.
	code, env = doJSON(t, r, http.MethodGet, "/api/v1/guest/session", hdr, nil)
	if code != http.StatusOK {
		t.Fatalf("get session = %d", code)
	}
	if got := env.Data["question"].(string); got != question {
		t.Errorf("restored question = %q, want %q", got, question)
	}
	if env.Data["feedback"] == nil {
		t.Error("restored session lost its feedback")
	}

	// Reset clears everything.
	code, env = doJSON(t, r, http.MethodPost, "/api/v1/guest/reset", hdr, nil)
	if code != http.StatusOK {
		t.Fatalf("reset = %d", code)
	}
	if env.Notice != "Guest interview session has been reset" {
		t.Errorf("reset notice = %q", env.Notice)
	}
	_, env = doJSON(t, r, http.MethodGet, "/api/v1/guest/session", hdr, nil)
	if env.Data["question"] != nil || env.Data["answer"].(string) != "" {
		t.Errorf("session after reset = %+v, want empty", env.Data)
	}
}

func TestGuestNewQuestionDiscardsPreviousRound(t *testing.T) {
	r := setupRouter(t)
	hdr := map[string]string{"X-Guest-Token": "tab-1"}

	doJSON(t, r, http.MethodPost, "/api/v1/guest/question", hdr, gin.H{"category": "Frontend Developer"})
	doJSON(t, r, http.MethodPut, "/api/v1/guest/answer", hdr, gin.H{"text": "an answer long enough"})
	doJSON(t, r, http.MethodPost, "/api/v1/guest/feedback", hdr, nil)

	code, env := doJSON(t, r, http.MethodPost, "/api/v1/guest/question", hdr, gin.H{"category": "Frontend Developer"})
	if code != http.StatusOK {
		t.Fatalf("second question = %d (%s)", code, env.Error)
	}

	_, env = doJSON(t, r, http.MethodGet, "/api/v1/guest/session", hdr, nil)
	if got := env.Data["answer"].(string); got != "" {
		t.Errorf("answer = %q, want cleared by the new question", got)
	}
	if env.Data["feedback"] != nil {
		t.Error("feedback must be cleared by the new question")
	}
}
