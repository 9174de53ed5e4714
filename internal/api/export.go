package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
)

// exportColumns is the fixed CSV layout consumed by the persistence
// collaborator. Order is a compatibility contract; do not reorder.
var exportColumns = []string{
	"time_ms", "stress", "emotion", "focus", "pitch", "yaw", "roll", "blink_rate",
}

func (s *Server) exportSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	frames := make([]frameRecord, len(s.frames))
	copy(frames, s.frames)
	id := s.sessionID
	s.mu.Unlock()

	filename := "session.csv"
	if id != "" {
		filename = "session-" + id + ".csv"
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	cw.Write(exportColumns)
	for _, f := range frames {
		cw.Write([]string{
			strconv.FormatInt(f.TimeMs, 10),
			strconv.Itoa(f.Stress),
			f.Emotion,
			strconv.Itoa(f.Focus),
			strconv.Itoa(f.Pitch),
			strconv.Itoa(f.Yaw),
			strconv.FormatFloat(f.Roll, 'f', 1, 64),
			strconv.Itoa(f.BlinkRate),
		})
	}
	cw.Flush()
}
