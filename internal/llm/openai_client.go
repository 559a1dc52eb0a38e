package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/somnolabs/sleep-intelligence/internal/domain"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const systemPrompt = `You are a non-medical sleep and circadian rhythm assistant.

You receive a computed circadian analysis for a single user (chronotype, phase
estimate, timing statistics, disruption risk, recommendations) and optionally
their latest analyzed sleep session. You must base your conclusions only on the
provided data.

Your goals:
- Describe the user's sleep and circadian state in clear, neutral language.
- Highlight patterns in stage distribution, efficiency, timing consistency, and phase shift.
- Factor in the user's chronotype when it helps explain patterns.
- Reinforce the provided recommendations with practical, behavioral framing.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (bedtime regularity, light exposure, wind-down habits).
- Never contradict the numeric analysis you were given.
- If data is limited or mixed, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's sleep and circadian state.",
  "observations": [
    "3-6 bullet points about patterns in stages, efficiency, timing, and phase.",
    "If relevant, one item about how their schedule aligns or conflicts with their chronotype."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about schedule regularity if consistency is low.",
    "Include at least one suggestion about light exposure if disruption risk factors mention it."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's computed sleep analysis.

- "circadian" contains the chronotype, phase estimate, timing statistics,
  optimal schedule, disruption risk, and rule-based recommendations.
- "latest_session", when present, contains the most recent analyzed session
  with stage percentages, efficiency, and sleep score.

JSON:

%s

Based on this data, respond in the required JSON format.`

// NarrativeLLM is the interface for generating the sleep narrative using an LLM.
type NarrativeLLM interface {
	// GenerateNarrative takes the computed analysis and returns the LLM narrative.
	GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error)
}

// OpenAIClient implements NarrativeLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client for generating narratives.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client: client,
		model:  model,
	}
}

// GenerateNarrative calls OpenAI to narrate the computed analysis.
func (c *OpenAIClient) GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	// Serialize context to JSON
	contextJSON, err := json.MarshalIndent(narrativeCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	// Call OpenAI
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	// Parse the JSON response
	var output domain.NarrativeOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
