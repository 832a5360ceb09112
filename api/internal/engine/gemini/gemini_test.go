package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-helper/api/internal/engine"
)

func TestProcessHomeworkRequiresAPIKey(t *testing.T) {
	e := New("", "gemini-2.5-flash")

	_, err := e.ProcessHomework(context.Background(), []byte{0xFF}, "image/jpeg", engine.Options{})

	assert.Error(t, err)
}

func TestProcessHomeworkCancelledContextSkipsBackoff(t *testing.T) {
	e := New("test-key", "gemini-2.5-flash")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := e.ProcessHomework(ctx, []byte{0xFF}, "image/jpeg", engine.Options{})

	require.Error(t, err)
	// the full retry schedule sleeps 900ms; a dead context must not
	assert.Less(t, time.Since(start), time.Second)
}
