package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"mockmate/internal/model"
)

// GenerateFeedback produces short feedback on one answer to one question.
func GenerateFeedback(ctx context.Context, question, answer string) (model.Feedback, error) {
	client, err := newClient()
	if err != nil {
		return model.Feedback{}, err
	}

	userPrompt := fmt.Sprintf(`User Answer: %q
Question: %q
Provide concise feedback (2-3 sentences) on the user's answer to the question. Focus on clarity, accuracy, and completeness.`, answer, question)

	log.Printf("[AI] Generating feedback (question length: %d, answer length: %d)", len(question), len(answer))

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return model.Feedback{}, fmt.Errorf("feedback generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return model.Feedback{}, fmt.Errorf("feedback generation returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return model.Feedback{}, fmt.Errorf("feedback generation returned empty text")
	}

	log.Printf("[AI] Feedback generated (%d chars)", len(text))
	return model.Feedback{Text: text}, nil
}
