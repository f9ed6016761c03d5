package practice

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler exposes the practice endpoints. All routes sit behind the bearer
// auth middleware; the handler itself only shapes requests and responses.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) DebateTopics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"topics": h.svc.DebateTopics()})
}

// DebateRespondRequest carries one user turn of a debate.
type DebateRespondRequest struct {
	Topic   string `json:"topic"`
	Stance  string `json:"stance"`
	Message string `json:"message"`
}

func (h *Handler) DebateRespond(w http.ResponseWriter, r *http.Request) {
	var req DebateRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Topic == "" || req.Stance == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "topic and stance are required"})
		return
	}
	reply := h.svc.DebateReply(req.Topic, req.Stance, req.Message)
	h.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// DebateReportRequest asks for a score card for a finished debate.
type DebateReportRequest struct {
	Topic  string `json:"topic"`
	Stance string `json:"stance"`
	Rounds int    `json:"rounds"`
}

func (h *Handler) DebateReport(w http.ResponseWriter, r *http.Request) {
	var req DebateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Topic == "" || req.Stance == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "topic and stance are required"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"report": h.svc.DebateReport(req.Topic, req.Stance, req.Rounds)})
}

func (h *Handler) ExtemporeTopic(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"topic": h.svc.ExtemporeTopic()})
}

// ExtemporeReportRequest asks for a score card for a speaking session.
type ExtemporeReportRequest struct {
	Topic           string `json:"topic"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (h *Handler) ExtemporeReport(w http.ResponseWriter, r *http.Request) {
	var req ExtemporeReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Topic == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "topic is required"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"report": h.svc.ExtemporeReport(req.Topic, req.DurationSeconds)})
}

// InterviewReportRequest asks for a simulated interview report.
type InterviewReportRequest struct {
	JobProfile string `json:"job_profile"`
	Difficulty string `json:"difficulty"`
}

func (h *Handler) InterviewReport(w http.ResponseWriter, r *http.Request) {
	var req InterviewReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.JobProfile == "" || req.Difficulty == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "job profile and difficulty level are required"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"report": h.svc.InterviewReport(req.JobProfile, req.Difficulty)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
