package httpapi

import (
	"net/http"
	"strconv"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req types.CheckInRequest
	if !s.decode(w, r, &req) {
		return
	}

	v, err := s.visitors.CheckIn(r.Context(), checkInParamsFromRequest(req))
	if err != nil {
		s.writeServiceError(w, r, "check in visitor", err)
		return
	}
	writeResponse(w, r, http.StatusCreated, visitorResponse(v))
}

func (s *Server) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	vs, err := s.visitors.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "list visitors", err)
		return
	}

	resp := types.VisitorListResponse{Visitors: make([]types.VisitorResponse, 0, len(vs))}
	for _, v := range vs {
		resp.Visitors = append(resp.Visitors, visitorResponse(v))
	}
	writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeInvalidField(w, r, "id", "must be a positive integer")
		return
	}

	v, err := s.visitors.CheckOut(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "check out visitor", err)
		return
	}
	writeResponse(w, r, http.StatusOK, visitorResponse(v))
}
