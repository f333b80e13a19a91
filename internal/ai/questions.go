package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"mockmate/internal/model"
)

// questionSet is the JSON shape the model is asked to return for a full
// interview question set.
type questionSet struct {
	Questions []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"questions"`
}

// GenerateQuestions asks the model for an ordered interview question set
// for a role. Each question gets a generated stable id; the sequence is
// fixed for the session that consumes it.
func GenerateQuestions(ctx context.Context, category string, count int) ([]model.Question, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	systemPrompt := "You are an experienced technical interviewer. Respond with strict JSON only."
	userPrompt := fmt.Sprintf(`Generate %d interview questions for a %s role, ordered from easier to harder.
For each question also provide a concise model answer an interviewer would accept.
Respond as a JSON object: {"questions": [{"question": "...", "answer": "..."}]}`, count, category)

	log.Printf("[AI] Generating %d questions for category: %s", count, category)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("question generation returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[AI] Question generation response preview: %s", truncateString(content, 200))

	var set questionSet
	if err := json.Unmarshal([]byte(content), &set); err != nil {
		extracted := extractJSONFromMarkdown(content)
		if err := json.Unmarshal([]byte(extracted), &set); err != nil {
			return nil, fmt.Errorf("failed to parse question set response: %w", err)
		}
	}

	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("question generation returned an empty set")
	}

	questions := make([]model.Question, 0, len(set.Questions))
	for _, q := range set.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		questions = append(questions, model.Question{
			ID:       uuid.NewString(),
			Question: text,
			Answer:   strings.TrimSpace(q.Answer),
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question generation returned only blank questions")
	}

	log.Printf("[AI] Generated %d questions", len(questions))
	return questions, nil
}

// GenerateGuestQuestion asks for a single entry-level question for the
// guest flow. Only the question text is returned.
func GenerateGuestQuestion(ctx context.Context, category string) (string, error) {
	client, err := newClient()
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`As an experienced prompt engineer, generate a single technical interview question.
Focus on a common entry-level topic for a %s role.
Provide only the question text, no answer or additional formatting.`, category)

	log.Printf("[AI] Generating guest question for category: %s", category)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("guest question generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("guest question generation returned no choices")
	}

	question := strings.TrimSpace(resp.Choices[0].Message.Content)
	if question == "" {
		return "", fmt.Errorf("guest question generation returned empty text")
	}
	return question, nil
}
