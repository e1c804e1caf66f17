package httpapi

import (
	"net/http"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

func (s *Server) handleIssuePass(w http.ResponseWriter, r *http.Request) {
	var req types.IssuePassRequest
	if !s.decode(w, r, &req) {
		return
	}

	rec, err := s.passes.Issue(r.Context(), issueParamsFromRequest(req))
	if err != nil {
		s.writeServiceError(w, r, "issue pass", err)
		return
	}

	writeResponse(w, r, http.StatusCreated, passResponse(statusOf(rec)))
}

func (s *Server) handleListPasses(w http.ResponseWriter, r *http.Request) {
	passes, err := s.passes.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "list passes", err)
		return
	}

	resp := types.PassListResponse{
		Passes:     make([]types.PassResponse, 0, len(passes)),
		ServerTime: s.now(),
	}
	for _, p := range passes {
		resp.Passes = append(resp.Passes, passResponse(p))
	}
	writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleLookupPass(w http.ResponseWriter, r *http.Request) {
	st, found, err := s.passes.Lookup(r.Context(), r.PathValue("plate"))
	if err != nil {
		s.writeServiceError(w, r, "lookup pass", err)
		return
	}

	resp := types.LookupResponse{Plate: r.PathValue("plate"), Found: found}
	if found {
		p := passResponse(st)
		resp.Plate = st.Plate
		resp.Pass = &p
	}
	writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleRevokePass(w http.ResponseWriter, r *http.Request) {
	if err := s.passes.Revoke(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "revoke pass", err)
		return
	}
	writeResponse(w, r, http.StatusOK, types.RevokeResponse{Revoked: 1})
}

func (s *Server) handleRevokeByPlate(w http.ResponseWriter, r *http.Request) {
	n, err := s.passes.RevokeByPlate(r.Context(), r.PathValue("plate"))
	if err != nil {
		s.writeServiceError(w, r, "revoke passes by plate", err)
		return
	}
	writeResponse(w, r, http.StatusOK, types.RevokeResponse{Revoked: n})
}
