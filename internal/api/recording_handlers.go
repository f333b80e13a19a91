package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mockmate/internal/transcript"
	"mockmate/internal/utils"
)

// startRecording begins a capture pass for the active question. Starting
// while already recording is the explicit "record again": the pass
// restarts with an empty transcript.
func startRecording(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	if err := sess.StartRecording(); err != nil {
		if errors.Is(err, transcript.ErrNotSupported) {
			utils.Error(c, http.StatusNotImplemented, "speech recognition is not available; continue with typed answers")
			return
		}
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"state":           string(sess.Recorder().State()),
		"active_question": sess.ActiveQuestion(),
	})
}

// stopRecording ends the capture pass and returns what it accumulated
func stopRecording(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	sess.StopRecording()
	utils.Success(c, gin.H{
		"state":      string(sess.Recorder().State()),
		"transcript": sess.Recorder().Transcript(),
	})
}

// SegmentsRequest carries recognition segments in emission order.
type SegmentsRequest struct {
	Segments []transcript.Segment `json:"segments" binding:"required,min=1"`
}

// pushSegments applies recognition segments to the current pass
func pushSegments(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	var req SegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "segments are required")
		return
	}

	for _, seg := range req.Segments {
		if err := sess.IngestSegment(seg); err != nil {
			// Segments for a stopped pass are rejected, never redirected
			// onto whatever question is active now.
			log.Printf("Segment rejected (session: %s): %v", sess.ID, err)
			utils.Error(c, http.StatusConflict, err.Error())
			return
		}
	}

	utils.Success(c, gin.H{
		"transcript": sess.Recorder().Transcript(),
		"interim":    sess.Recorder().Interim(),
	})
}

// getRecording returns the live transcript state
func getRecording(c *gin.Context) {
	sess, _, ok := loadSession(c)
	if !ok {
		return
	}

	utils.Success(c, gin.H{
		"state":      string(sess.Recorder().State()),
		"transcript": sess.Recorder().Transcript(),
		"interim":    sess.Recorder().Interim(),
	})
}
