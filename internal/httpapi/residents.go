package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

// handleListResidents lists every resident, or those matching ?q=.
func (s *Server) handleListResidents(w http.ResponseWriter, r *http.Request) {
	rs, err := s.residents.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeServiceError(w, r, "list residents", err)
		return
	}

	resp := types.ResidentListResponse{Residents: make([]types.ResidentResponse, 0, len(rs))}
	for _, res := range rs {
		resp.Residents = append(resp.Residents, residentResponse(res))
	}
	writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleSaveResident(w http.ResponseWriter, r *http.Request) {
	var req types.SaveResidentRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, created, err := s.residents.Save(r.Context(), residentParamsFromRequest(r.PathValue("unit"), req))
	if err != nil {
		s.writeServiceError(w, r, "save resident", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeResponse(w, r, status, residentResponse(res))
}

func (s *Server) handleDeleteResident(w http.ResponseWriter, r *http.Request) {
	if err := s.residents.Delete(r.Context(), r.PathValue("unit")); err != nil {
		s.writeServiceError(w, r, "delete resident", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
