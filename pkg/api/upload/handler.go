package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"finanalyst/pkg/core/chat"
	"finanalyst/pkg/core/loader"
	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/core/report"
	"finanalyst/pkg/core/session"
)

// Handler accepts statement uploads and installs the derived analysis
// into the owning session.
type Handler struct {
	sessions *session.Manager
	engine   *metrics.Engine
	logger   zerolog.Logger
}

func NewHandler(sessions *session.Manager, engine *metrics.Engine, logger zerolog.Logger) *Handler {
	return &Handler{sessions: sessions, engine: engine, logger: logger}
}

// SessionResponse is returned when a session is opened.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	Messages  []chat.Turn `json:"messages"`
}

// AnalysisResponse is the formatted analysis plus the refreshed
// conversation, returned after a successful upload.
type AnalysisResponse struct {
	SessionID        string            `json:"session_id"`
	Table            []report.TableRow `json:"table"`
	LiquidityPrior   string            `json:"liquidity_prior"`
	LiquidityCurrent string            `json:"liquidity_current"`
	Messages         []chat.Turn       `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleCreateSession opens a new conversation session.
// POST /api/v1/sessions
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	h.logger.Info().Str("session_id", s.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: s.ID, Messages: s.Messages()})
}

// HandleUpload ingests a statement file for a session.
// POST /api/v1/sessions/{sessionID}/statement, multipart field "file".
//
// A DataFormatError or MissingRequiredRowError is reported per upload
// attempt and leaves the session (including its conversation) exactly
// as it was: nothing partial is installed.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing multipart field 'file'"})
		return
	}
	defer file.Close()

	rows, err := loader.ParseUpload(file)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	analysis, err := h.engine.Analyze(rows)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	serialized := report.Serialize(analysis)
	if prev := s.Analysis(); prev != nil && prev != analysis {
		h.engine.Invalidate(prev)
	}
	s.SetAnalysis(analysis, serialized)

	h.logger.Info().Str("session_id", s.ID).Int("rows", len(analysis.Rows)).Msg("statement analyzed")
	writeJSON(w, http.StatusOK, AnalysisResponse{
		SessionID:        s.ID,
		Table:            report.FormatTable(analysis.Rows),
		LiquidityPrior:   report.FormatRatio(analysis.Liquidity.Prior),
		LiquidityCurrent: report.FormatCurrentRatioWithDelta(analysis.Liquidity),
		Messages:         s.Messages(),
	})
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	var formatErr *loader.DataFormatError
	var rowErr *metrics.MissingRequiredRowError
	switch {
	case errors.As(err, &formatErr):
		h.logger.Warn().Err(err).Msg("rejected upload: bad format")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Có lỗi xảy ra khi đọc hoặc xử lý file: " + formatErr.Error() + ". Vui lòng kiểm tra định dạng file."})
	case errors.As(err, &rowErr):
		h.logger.Warn().Err(err).Msg("rejected upload: required row missing")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Lỗi cấu trúc dữ liệu: " + rowErr.Error()})
	default:
		h.logger.Error().Err(err).Msg("upload failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
