package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"study-helper/api/internal/engine"
	"study-helper/api/internal/homework"
	"study-helper/api/internal/util"
)

type parseRequest struct {
	Engine      string `json:"engine"` // "gemini" (default) | "gpt"
	ImageB64    string `json:"image_b64"`
	Prompt      string `json:"prompt,omitempty"`
	SubjectHint string `json:"subject_hint,omitempty"`
	GradeHint   int    `json:"grade_hint,omitempty"`
}

// ParseHomework runs one photo through an engine and decodes the reply:
// strict JSON first, free-text grammar as fallback. The result is tagged
// with the method that produced it.
func (h *Handle) ParseHomework(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}

	img, mimeHint, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
	if err != nil || len(img) == 0 {
		http.Error(w, "bad image_b64", http.StatusBadRequest)
		return
	}
	mime := util.PickMIME("", mimeHint, img)

	eng, err := h.engs.GetEngine(req.Engine)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	start := time.Now()
	raw, err := eng.ProcessHomework(ctx, img, mime, engine.Options{
		Prompt:      req.Prompt,
		SubjectHint: req.SubjectHint,
		GradeHint:   req.GradeHint,
	})
	if err != nil {
		http.Error(w, "parse error: "+err.Error(), http.StatusBadGateway)
		return
	}

	res := homework.Parse(raw)
	res.ProcessingTimeSec = time.Since(start).Seconds()
	log.Printf("parse: engine=%s method=%s questions=%d subject=%s conf=%.2f",
		eng.Name(), res.Method, len(res.Questions), res.Subject, res.OverallConfidence)

	writeJSON(w, http.StatusOK, res)
}
