package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct{ name string }

func (f *fakeEngine) Name() string     { return f.name }
func (f *fakeEngine) GetModel() string { return "test-model" }
func (f *fakeEngine) ProcessHomework(context.Context, []byte, string, Options) (string, error) {
	return "", nil
}

func TestGetEngine(t *testing.T) {
	g := &fakeEngine{name: "gemini"}
	o := &fakeEngine{name: "gpt"}
	engs := &Engines{Gemini: g, OpenAI: o}

	for _, name := range []string{"", "gemini"} {
		e, err := engs.GetEngine(name)
		require.NoError(t, err)
		assert.Same(t, Engine(g), e)
	}
	for _, name := range []string{"gpt", "openai"} {
		e, err := engs.GetEngine(name)
		require.NoError(t, err)
		assert.Same(t, Engine(o), e)
	}

	_, err := engs.GetEngine("llama")
	assert.Error(t, err)
}
