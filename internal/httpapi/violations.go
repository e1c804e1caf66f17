package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

func (s *Server) handleRecordViolation(w http.ResponseWriter, r *http.Request) {
	var req types.RecordViolationRequest
	if !s.decode(w, r, &req) {
		return
	}

	v, err := s.violations.Record(r.Context(), violationParamsFromRequest(req))
	if err != nil {
		s.writeServiceError(w, r, "record violation", err)
		return
	}
	writeResponse(w, r, http.StatusCreated, violationResponse(v))
}

func (s *Server) handleViolationHistory(w http.ResponseWriter, r *http.Request) {
	vs, err := s.violations.History(r.Context(), r.PathValue("plate"))
	if err != nil {
		s.writeServiceError(w, r, "violation history", err)
		return
	}

	resp := types.ViolationHistoryResponse{
		Plate:      r.PathValue("plate"),
		Violations: make([]types.ViolationResponse, 0, len(vs)),
	}
	for _, v := range vs {
		resp.Violations = append(resp.Violations, violationResponse(v))
	}
	writeResponse(w, r, http.StatusOK, resp)
}
