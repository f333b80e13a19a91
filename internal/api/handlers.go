package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mockmate/internal/answers"
	"mockmate/internal/session"
	"mockmate/internal/utils"
)

func RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		interviews := v1.Group("/interviews")
		{
			interviews.POST("", createInterview)
			interviews.GET("/:session_id", getInterview)
			interviews.POST("/:session_id/questions/:question_id/activate", activateQuestion)
			interviews.PUT("/:session_id/questions/:question_id/draft", setDraft)
			interviews.POST("/:session_id/questions/:question_id/save", saveAnswer)
			interviews.GET("/:session_id/answers", listSessionAnswers)
			interviews.POST("/:session_id/submit", submitInterview)
			interviews.POST("/:session_id/recording/start", startRecording)
			interviews.POST("/:session_id/recording/stop", stopRecording)
			interviews.POST("/:session_id/recording/segments", pushSegments)
			interviews.GET("/:session_id/recording", getRecording)
		}

		g := v1.Group("/guest")
		{
			g.GET("/session", getGuestSession)
			g.POST("/question", generateGuestQuestion)
			g.PUT("/answer", setGuestAnswer)
			g.POST("/feedback", guestFeedback)
			g.POST("/reset", resetGuest)
			g.POST("/recording/start", startGuestRecording)
			g.POST("/recording/stop", stopGuestRecording)
			g.POST("/recording/segments", pushGuestSegments)
		}
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "mockmate-backend",
	})
}

// ownerID extracts the opaque owner identity. Absence means guest: the
// caller belongs on the guest routes, not here.
func ownerID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader("X-User-ID"))
	if id == "" {
		utils.Error(c, http.StatusUnauthorized, "X-User-ID header is required; use the guest endpoints without an account")
		return "", false
	}
	return id, true
}

// loadSession resolves the session in the path and checks ownership.
func loadSession(c *gin.Context) (*session.Session, string, bool) {
	owner, ok := ownerID(c)
	if !ok {
		return nil, "", false
	}

	id := c.Param("session_id")
	sess, ok := sessions.Get(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "interview session not found")
		return nil, "", false
	}
	if sess.UserID != owner {
		utils.Error(c, http.StatusForbidden, "interview session belongs to another user")
		return nil, "", false
	}
	return sess, owner, true
}

// CreateInterviewRequest is the request body for starting an interview.
type CreateInterviewRequest struct {
	Category string `json:"category" binding:"required"`
}

// createInterview generates a fixed question set and opens a session
func createInterview(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
		return
	}

	if !interviewCfg.HasCategory(req.Category) {
		utils.Error(c, http.StatusBadRequest, "unknown interview category: "+req.Category)
		return
	}

	questions, err := generateQuestions(c.Request.Context(), req.Category, interviewCfg.QuestionsPerSession)
	if err != nil {
		log.Printf("Error generating questions for %s: %v", req.Category, err)
		utils.Error(c, http.StatusInternalServerError, "failed to generate interview questions. Please try again.")
		return
	}

	sess := session.New(owner, req.Category, questions, recSource)
	sessions.Put(sess)
	log.Printf("Interview session created: %s (user: %s, category: %s, questions: %d)",
		sess.ID, owner, req.Category, len(questions))

	utils.Success(c, gin.H{
		"session_id":            sess.ID,
		"category":              sess.Category,
		"questions":             sess.Questions,
		"active_question":       sess.ActiveQuestion(),
		"recognition_supported": recSource.Available(),
	})
}

// getInterview returns the full session state for rendering
func getInterview(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	state := "incomplete"
	if sess.Ready() {
		state = "ready"
	}

	utils.Success(c, gin.H{
		"session_id":      sess.ID,
		"category":        sess.Category,
		"questions":       sess.Questions,
		"answers":         sess.Answers.Records(),
		"active_question": sess.ActiveQuestion(),
		"saved_count":     sess.Answers.SavedCount(),
		"total":           sess.Answers.Len(),
		"submit_state":    state,
	})
}

// activateQuestion switches the displayed question, stopping capture
func activateQuestion(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	questionID := c.Param("question_id")
	if err := sess.Activate(questionID); err != nil {
		utils.Error(c, http.StatusNotFound, err.Error())
		return
	}

	rec, _ := sess.Answers.Record(questionID)
	utils.Success(c, gin.H{
		"active_question": questionID,
		"answer":          rec,
	})
}

// DraftRequest is a manual edit. Empty text is a valid draft.
type DraftRequest struct {
	Text string `json:"text"`
}

// setDraft applies a manual answer edit
func setDraft(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid draft payload")
		return
	}

	questionID := c.Param("question_id")
	if err := sess.SetDraft(questionID, req.Text); err != nil {
		if errors.Is(err, session.ErrRecordingActive) {
			utils.Error(c, http.StatusConflict, err.Error())
		} else {
			utils.Error(c, http.StatusNotFound, err.Error())
		}
		return
	}

	rec, _ := sess.Answers.Record(questionID)
	utils.Success(c, gin.H{
		"question_id": questionID,
		"answer":      rec,
	})
}

// saveAnswer runs the save gate for one question
func saveAnswer(c *gin.Context) {
	sess, owner, ok := loadSession(c)
	if !ok {
		return
	}

	questionID := c.Param("question_id")
	question, found := sess.Question(questionID)
	if !found {
		utils.Error(c, http.StatusNotFound, "question does not belong to this session")
		return
	}

	if err := sess.BeginSave(questionID); err != nil {
		utils.Error(c, http.StatusConflict, err.Error())
		return
	}
	defer sess.EndSave(questionID)

	// The text is captured at save-request time: a draft edited while the
	// save is in flight must not end up flagged as saved.
	rec, _ := sess.Answers.Record(questionID)

	outcome, err := saveGate.Save(c.Request.Context(), answers.SaveRequest{
		OwnerID:    owner,
		SessionRef: sess.ID,
		Question:   question,
		Text:       rec.Text,
	})
	if err != nil {
		if errors.Is(err, answers.ErrEmptyAnswer) {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error saving answer (session: %s, question: %s): %v", sess.ID, questionID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to save. Please try again.")
		return
	}

	applied := sess.Answers.MarkSavedIf(questionID, rec.Text)
	if !applied {
		log.Printf("Save completed but draft changed mid-flight, staying unsaved (question: %s)", questionID)
	}

	current, _ := sess.Answers.Record(questionID)
	data := gin.H{
		"question_id": questionID,
		"outcome":     outcome,
		"answer":      current,
		"saved_count": sess.Answers.SavedCount(),
		"total":       sess.Answers.Len(),
	}

	if outcome == answers.OutcomeAlreadySaved {
		utils.Notice(c, "This answer was already saved", data)
		return
	}
	utils.Notice(c, "Your answer has been saved", data)
}

// listSessionAnswers returns the persisted answers backing the feedback
// stage
func listSessionAnswers(c *gin.Context) {
	sess, owner, ok := loadSession(c)
	if !ok {
		return
	}

	records, err := answerRepo.ListBySession(c.Request.Context(), owner, sess.ID)
	if err != nil {
		log.Printf("Error listing session answers (session: %s): %v", sess.ID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve saved answers")
		return
	}

	utils.Success(c, gin.H{
		"session_id": sess.ID,
		"answers":    records,
		"count":      len(records),
	})
}

// submitInterview evaluates the submission gate
func submitInterview(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	stageRef, err := sess.Submit()
	if err != nil {
		var incomplete *session.IncompleteError
		if errors.As(err, &incomplete) {
			utils.Error(c, http.StatusBadRequest, incomplete.Error())
			return
		}
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Interview submitted: %s", sess.ID)
	utils.Notice(c, "All answers submitted successfully!", gin.H{
		"session_id": sess.ID,
		"stage_ref":  stageRef,
	})
}
