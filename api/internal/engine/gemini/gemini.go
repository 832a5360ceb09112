package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"study-helper/api/internal/engine"
	"study-helper/api/internal/engine/prompt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// ProcessHomework sends the photo with the parse prompt and returns the
// raw reply text.
func (e *Engine) ProcessHomework(ctx context.Context, img []byte, mime string, opts engine.Options) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	// JSON only
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	sys := opts.Prompt
	if strings.TrimSpace(sys) == "" {
		sys = prompt.ParseSystem
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(sys),
			genai.Text("\n" + prompt.ParseSchema),
		},
	}

	user := prompt.ParseUser
	if opts.GradeHint >= 1 && opts.GradeHint <= 12 {
		user += fmt.Sprintf(" grade_hint=%d.", opts.GradeHint)
	}
	if s := strings.TrimSpace(opts.SubjectHint); s != "" {
		user += fmt.Sprintf(" subject_hint=%q.", s)
	}

	parts := []genai.Part{
		genai.Text(user),
		&genai.Blob{MIMEType: mime, Data: img},
	}

	// Retries for 5xx/transient failures; a cancelled context stops the
	// loop without burning the backoff sleeps.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			if attempt < 3 {
				time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			}
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", fmt.Errorf("gemini parse: empty response")
		}
		return txt, nil
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
