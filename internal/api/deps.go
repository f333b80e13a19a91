package api

import (
	"context"
	"log"

	"mockmate/internal/ai"
	"mockmate/internal/answers"
	"mockmate/internal/config"
	"mockmate/internal/guest"
	"mockmate/internal/model"
	"mockmate/internal/session"
	"mockmate/internal/transcript"
)

// The AI collaborators are held as function values so handler tests can
// swap them out without a live API key.
var (
	generateQuestions = func(ctx context.Context, category string, n int) ([]model.Question, error) {
		return ai.GenerateQuestions(ctx, category, n)
	}
	generateSingleQuestion = func(ctx context.Context, category string) (string, error) {
		return ai.GenerateGuestQuestion(ctx, category)
	}
	generateFeedback = func(ctx context.Context, question, answer string) (model.Feedback, error) {
		return ai.GenerateFeedback(ctx, question, answer)
	}
)

// Package-level engine state, injected once from main.
var (
	answerRepo   answers.Repository
	saveGate     *answers.Gate
	sessions     *session.Manager
	guests       *guest.Manager
	interviewCfg *config.Interview
	recSource    transcript.Source
)

// InitAnswerRepository wires the persisted answer repository and builds
// the save gate over it.
func InitAnswerRepository(repo answers.Repository) {
	answerRepo = repo
	saveGate = answers.NewGate(repo)
	if repo != nil {
		log.Printf("Answer repository initialized successfully")
	} else {
		log.Printf("Warning: Answer repository is nil")
	}
}

// InitEngine wires the interview configuration, recognition source, and
// session registries.
func InitEngine(cfg *config.Interview, source transcript.Source, guestStore guest.Store) {
	interviewCfg = cfg
	recSource = source
	sessions = session.NewManager()
	guests = guest.NewManager(guestStore, source)
	log.Printf("Engine initialized: %d categories, recognition source: %s", len(cfg.Categories), source.Name())
}
