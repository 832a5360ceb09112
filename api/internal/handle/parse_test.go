package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-helper/api/internal/engine"
	"study-helper/api/internal/homework"
)

type stubEngine struct {
	reply string
	err   error
}

func (s *stubEngine) Name() string     { return "stub" }
func (s *stubEngine) GetModel() string { return "stub-model" }
func (s *stubEngine) ProcessHomework(ctx context.Context, img []byte, mime string, opts engine.Options) (string, error) {
	return s.reply, s.err
}

func newParseHandle(e engine.Engine) *Handle {
	return New(&engine.Engines{Gemini: e}, nil, nil, nil)
}

func postParse(t *testing.T, h *Handle, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	js, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/homework/parse", bytes.NewReader(js))
	rec := httptest.NewRecorder()
	h.ParseHomework(rec, req)
	return rec
}

func fakeImage() string {
	return base64.StdEncoding.EncodeToString([]byte("not really a jpeg"))
}

func TestParseHomeworkEnhancedReply(t *testing.T) {
	h := newParseHandle(&stubEngine{
		reply: `{"subject":"Math","subject_confidence":0.9,"questions":[{"text":"q","answer":"a","confidence":0.8}]}`,
	})

	rec := postParse(t, h, map[string]any{"image_b64": fakeImage()})

	require.Equal(t, http.StatusOK, rec.Code)
	var res homework.ParsingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, homework.MethodEnhanced, res.Method)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Math", res.Subject)
	assert.GreaterOrEqual(t, res.ProcessingTimeSec, 0.0)
}

func TestParseHomeworkLegacyFallback(t *testing.T) {
	h := newParseHandle(&stubEngine{
		reply: "SUBJECT: Chinese\nQUESTION: translate\nANSWER: done",
	})

	rec := postParse(t, h, map[string]any{"image_b64": fakeImage()})

	require.Equal(t, http.StatusOK, rec.Code)
	var res homework.ParsingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, homework.MethodLegacy, res.Method)
	assert.Equal(t, "Chinese", res.Subject)
}

func TestParseHomeworkBadImage(t *testing.T) {
	h := newParseHandle(&stubEngine{})

	rec := postParse(t, h, map[string]any{"image_b64": "!!not-base64!!"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseHomeworkEngineFailure(t *testing.T) {
	h := newParseHandle(&stubEngine{err: errors.New("provider down")})

	rec := postParse(t, h, map[string]any{"image_b64": fakeImage()})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestParseHomeworkUnknownEngine(t *testing.T) {
	h := newParseHandle(&stubEngine{})

	rec := postParse(t, h, map[string]any{"image_b64": fakeImage(), "engine": "llama"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseHomeworkMethodNotAllowed(t *testing.T) {
	h := newParseHandle(&stubEngine{})
	req := httptest.NewRequest(http.MethodGet, "/v1/homework/parse", nil)
	rec := httptest.NewRecorder()

	h.ParseHomework(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
