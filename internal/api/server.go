// Package api exposes the analysis engine to external collaborators over
// HTTP: frame ingestion from the detector, session statistics and CSV
// export for the persistence collaborator, and session lifecycle control.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calmview/calmview/internal/clock"
	"github.com/calmview/calmview/internal/face"
	"github.com/calmview/calmview/internal/monitoring"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// frameRecord is the per-frame row kept for CSV export. It lives in the
// API layer: the engine itself records nothing beyond scores.
type frameRecord struct {
	TimeMs    int64
	Stress    int
	Emotion   string
	Focus     int
	Pitch     int
	Yaw       int
	Roll      float64
	BlinkRate int
}

// Server serializes all access to one Analyzer instance. The engine is
// single-writer by contract; the mutex provides that discipline at the
// HTTP boundary.
type Server struct {
	mu        sync.Mutex
	analyzer  *face.Analyzer
	clk       clock.Clock
	sessionID string
	startedMs int64
	frames    []frameRecord
}

// NewServer wraps an analyzer and its clock.
func NewServer(analyzer *face.Analyzer, clk clock.Clock) *Server {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Server{analyzer: analyzer, clk: clk}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux wires the collaborator-facing routes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/start", s.startSession)
	mux.HandleFunc("/api/session/stop", s.stopSession)
	mux.HandleFunc("/api/session/stats", s.showSessionStats)
	mux.HandleFunc("/api/session/distribution", s.showDistribution)
	mux.HandleFunc("/api/session/export", s.exportSession)
	mux.HandleFunc("/api/frames", s.analyzeFrame)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type frameRequest struct {
	Landmarks []face.Point     `json:"landmarks"`
	Box       face.BoundingBox `json:"box"`
	Emotion   string           `json:"emotion"`
	TimeMs    *int64           `json:"time_ms"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	s.analyzer.Reset()
	s.sessionID = uuid.NewString()
	s.startedMs = s.clk.NowMillis()
	s.frames = nil
	id := s.sessionID
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]string{"session_id": id})
}

func (s *Server) stopSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	stats, ok := s.analyzer.SessionStats()
	id := s.sessionID
	s.analyzer.Reset()
	s.sessionID = ""
	s.frames = nil
	s.mu.Unlock()

	resp := map[string]interface{}{"session_id": id}
	if ok {
		resp["stats"] = stats
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) analyzeFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Landmarks) != face.NumLandmarks {
		s.writeJSONError(w, http.StatusBadRequest,
			"landmarks must contain exactly "+strconv.Itoa(face.NumLandmarks)+" points")
		return
	}

	s.mu.Lock()
	result := s.analyzer.Analyze(face.LandmarkSet(req.Landmarks), req.Box)

	timeMs := s.clk.NowMillis() - s.startedMs
	if req.TimeMs != nil {
		timeMs = *req.TimeMs
	}
	s.frames = append(s.frames, frameRecord{
		TimeMs:    timeMs,
		Stress:    result.StressScore,
		Emotion:   req.Emotion,
		Focus:     result.FocusPercent(),
		Pitch:     result.HeadPose.Pitch,
		Yaw:       result.HeadPose.Yaw,
		Roll:      result.HeadPose.Roll,
		BlinkRate: result.BlinksPerMinute(),
	})
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) showSessionStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	stats, ok := s.analyzer.SessionStats()
	s.mu.Unlock()

	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "No frames analyzed")
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) showDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	buckets := s.analyzer.Distribution()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"buckets": buckets})
}
