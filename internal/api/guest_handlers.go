package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mockmate/internal/guest"
	"mockmate/internal/transcript"
	"mockmate/internal/utils"
)

// guestSession resolves the per-tab guest session from its token.
func guestSession(c *gin.Context) (*guest.Session, bool) {
	token := strings.TrimSpace(c.GetHeader("X-Guest-Token"))
	if token == "" {
		utils.Error(c, http.StatusBadRequest, "X-Guest-Token header is required for guest mode")
		return nil, false
	}
	return guests.Get(token), true
}

// getGuestSession restores the snapshot on mount
func getGuestSession(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	snap := s.Snapshot()
	utils.Success(c, gin.H{
		"question": snap.Question,
		"answer":   snap.Answer,
		"feedback": snap.Feedback,
		"category": snap.Category,
	})
}

// GuestQuestionRequest selects the interview category.
type GuestQuestionRequest struct {
	Category string `json:"category" binding:"required"`
}

// generateGuestQuestion produces a fresh single question, clearing the
// previous answer and feedback
func generateGuestQuestion(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	var req GuestQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "please select an interview category first")
		return
	}
	if !interviewCfg.HasCategory(req.Category) {
		utils.Error(c, http.StatusBadRequest, "unknown interview category: "+req.Category)
		return
	}

	question, err := generateSingleQuestion(c.Request.Context(), req.Category)
	if err != nil {
		log.Printf("Error generating guest question: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to generate interview question. Please try again.")
		return
	}

	s.SetCategory(req.Category)
	s.SetQuestion(question)

	utils.Success(c, gin.H{
		"question": question,
		"category": req.Category,
	})
}

// GuestAnswerRequest is a typed answer edit.
type GuestAnswerRequest struct {
	Text string `json:"text"`
}

// setGuestAnswer applies a typed edit to the guest answer
func setGuestAnswer(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	if s.Recorder().Recording() {
		utils.Error(c, http.StatusConflict, "manual editing is disabled while recording")
		return
	}

	var req GuestAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid answer payload")
		return
	}

	s.SetAnswer(req.Text)
	utils.Success(c, gin.H{"answer": req.Text})
}

// guestFeedback generates AI feedback for the current answer
func guestFeedback(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	snap := s.Snapshot()
	if snap.Question == nil || snap.Answer == "" {
		utils.Error(c, http.StatusBadRequest, "please record an answer first")
		return
	}
	if len(strings.TrimSpace(snap.Answer)) < interviewCfg.MinGuestAnswerLen {
		utils.Error(c, http.StatusBadRequest,
			fmt.Sprintf("your answer should be at least %d characters long", interviewCfg.MinGuestAnswerLen))
		return
	}

	fb, err := generateFeedback(c.Request.Context(), *snap.Question, snap.Answer)
	if err != nil {
		log.Printf("Error generating guest feedback: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to generate feedback. Please try again.")
		return
	}

	s.SetFeedback(fb)
	utils.Success(c, gin.H{"feedback": fb})
}

// resetGuest clears the session and its storage slot
func resetGuest(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	s.Reset()
	log.Printf("[Guest %s] Session reset", s.Token)
	utils.Notice(c, "Guest interview session has been reset", gin.H{})
}

// startGuestRecording begins a guest capture pass
func startGuestRecording(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	if err := s.StartRecording(); err != nil {
		if errors.Is(err, transcript.ErrNotSupported) {
			utils.Error(c, http.StatusNotImplemented, "speech recognition is not available; continue with typed answers")
			return
		}
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(c, gin.H{"state": string(s.Recorder().State())})
}

// stopGuestRecording ends the guest capture pass
func stopGuestRecording(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	s.StopRecording()
	utils.Success(c, gin.H{
		"state":  string(s.Recorder().State()),
		"answer": s.Snapshot().Answer,
	})
}

// pushGuestSegments applies recognition segments to the guest pass
func pushGuestSegments(c *gin.Context) {
	s, ok := guestSession(c)
	if !ok {
		return
	}

	var req SegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "segments are required")
		return
	}

	for _, seg := range req.Segments {
		if err := s.IngestSegment(seg); err != nil {
			utils.Error(c, http.StatusConflict, err.Error())
			return
		}
	}

	utils.Success(c, gin.H{
		"answer":  s.Snapshot().Answer,
		"interim": s.Recorder().Interim(),
	})
}
