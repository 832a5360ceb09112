package handle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSync(t *testing.T, h *Handle, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	js, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/questions/sync", bytes.NewReader(js))
	rec := httptest.NewRecorder()
	h.SyncQuestions(rec, req)
	return rec
}

func TestSyncQuestionsSkipsMalformedRecords(t *testing.T) {
	h := New(nil, nil, nil, nil)

	rec := postSync(t, h, map[string]any{
		"student_id": "student-1",
		"records": []map[string]any{
			{"isCorrect": false},                       // no question text
			{"questionText": "q", "isCorrect": "nope"}, // non-bool isCorrect
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0, res["archived"])
	assert.Equal(t, 2, res["skipped"])
}

func TestSyncQuestionsRequiresStudentID(t *testing.T) {
	h := New(nil, nil, nil, nil)

	rec := postSync(t, h, map[string]any{
		"records": []map[string]any{{"questionText": "q"}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncQuestionsMethodNotAllowed(t *testing.T) {
	h := New(nil, nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/questions/sync", nil)
	rec := httptest.NewRecorder()

	h.SyncQuestions(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
