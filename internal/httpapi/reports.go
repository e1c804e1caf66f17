package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

const defaultForecastHours = 24

func (s *Server) handleViolationSummary(w http.ResponseWriter, r *http.Request) {
	counts, err := s.reports.ViolationSummary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, "violation summary", err)
		return
	}

	resp := types.ViolationSummaryResponse{Counts: counts}
	for _, n := range counts {
		resp.Total += n
	}
	writeResponse(w, r, http.StatusOK, resp)
}

func (s *Server) handleExpirationForecast(w http.ResponseWriter, r *http.Request) {
	hours := defaultForecastHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeInvalidField(w, r, "hours", "must be an integer")
			return
		}
		hours = n
	}
	// Out-of-range values would overflow time.Duration before the service
	// could reject them.
	if hours <= 0 {
		writeInvalidField(w, r, "hours", "must be greater than 0")
		return
	}
	if limit := int(service.MaxForecastWindow / time.Hour); hours > limit {
		writeInvalidField(w, r, "hours", "must be at most "+strconv.Itoa(limit))
		return
	}

	buckets, err := s.reports.ExpirationForecast(r.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		s.writeServiceError(w, r, "expiration forecast", err)
		return
	}
	writeResponse(w, r, http.StatusOK, forecastResponse(hours, buckets))
}
