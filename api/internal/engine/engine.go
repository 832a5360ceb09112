package engine

import (
	"context"
	"errors"
)

// Options carry the hints the mobile client attaches to a photo.
type Options struct {
	// Prompt overrides the embedded system prompt when non-empty.
	Prompt string
	// SubjectHint narrows detection when the client already knows the
	// subject ("Math", "Chinese", ...). Empty means detect.
	SubjectHint string
	// GradeHint is the student's grade level, 0 when unknown.
	GradeHint int
}

// Engine sends a homework photo to one LLM provider and returns the raw
// model reply. Decoding (strict JSON vs free-text fallback) is the
// homework package's job, not the engine's.
type Engine interface {
	Name() string
	GetModel() string
	ProcessHomework(ctx context.Context, img []byte, mime string, opts Options) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(name string) (Engine, error) {
	switch name {
	case "", "gemini":
		return e.Gemini, nil
	case "gpt", "openai":
		return e.OpenAI, nil
	default:
		return nil, errors.New("unknown engine; use 'gemini' or 'gpt'")
	}
}
