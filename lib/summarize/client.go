// Package summarize talks to the generative-AI provider and runs the
// summary workflow on top of the note service.
package summarize

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/calebns/notelet/lib/apperr"
)

const (
	LengthShort    = "short"
	LengthMedium   = "medium"
	LengthDetailed = "detailed"

	ToneNeutral   = "neutral"
	ToneFormal    = "formal"
	ToneCasual    = "casual"
	ToneTechnical = "technical"
	ToneSimple    = "simple"
)

const generationTemperature = 0.5

// outputBudgets maps a length preference to the max output tokens sent to
// the provider. There is no local cap on the returned text beyond this.
var outputBudgets = map[string]int32{
	LengthShort:    256,
	LengthMedium:   512,
	LengthDetailed: 1536,
}

// toneClauses are appended verbatim to the system portion of the prompt.
// Neutral appends nothing.
var toneClauses = map[string]string{
	ToneNeutral:   "",
	ToneFormal:    " Use a formal tone.",
	ToneCasual:    " Use a casual, conversational tone.",
	ToneTechnical: " Use technical language and precise terminology.",
	ToneSimple:    " Use simple, easy-to-understand language.",
}

// Request is one generation call to the provider.
type Request struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	Length string `json:"length"`
	Tone   string `json:"tone"`
}

// ApplyDefaults fills unset preferences with the same defaults the web
// client uses: gemini-1.5-pro, medium, neutral.
func (r *Request) ApplyDefaults() {
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.Length == "" {
		r.Length = LengthMedium
	}
	if r.Tone == "" {
		r.Tone = ToneNeutral
	}
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
		validation.Field(&r.Model, validation.Required, validation.In(modelIDs()...)),
		validation.Field(&r.Length, validation.Required, validation.In(LengthShort, LengthMedium, LengthDetailed)),
		validation.Field(&r.Tone, validation.Required, validation.In(ToneNeutral, ToneFormal, ToneCasual, ToneTechnical, ToneSimple)),
	)
}

// Prompt builds the full generation prompt, tone clause included.
func (r Request) Prompt() string {
	return fmt.Sprintf(
		"You are a helpful assistant that summarizes text content. Provide concise but comprehensive summaries that capture the main points and key details.%s\n\nPlease summarize the following text in a %s length and %s tone:\n\n%s",
		toneClauses[r.Tone], r.Length, r.Tone, r.Text,
	)
}

// MaxOutputTokens resolves the length preference; unknown values fall back
// to the medium budget.
func (r Request) MaxOutputTokens() int32 {
	if budget, ok := outputBudgets[r.Length]; ok {
		return budget
	}
	return outputBudgets[LengthMedium]
}

// Generator is the summarization provider as the orchestrator sees it.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiClient implements Generator against the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating gemini client")
	}
	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return "", errors.Wrapf(apperr.ErrValidation, "summary request: %v", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt()), &genai.GenerateContentConfig{
		MaxOutputTokens: req.MaxOutputTokens(),
		Temperature:     genai.Ptr[float32](generationTemperature),
	})
	if err != nil {
		return "", errors.Wrapf(apperr.ErrSummaryGeneration, "calling gemini: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.Wrap(apperr.ErrSummaryGeneration, "no candidates in response")
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", errors.Wrap(apperr.ErrSummaryGeneration, "empty candidate text")
	}

	return text, nil
}
