package httpapi

import (
	"time"

	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/service"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"
	"github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/types"
)

// timeLayout is RFC 3339 with fixed millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// ── Passes ───────────────────────────────────────────────────────────────────

func issueParamsFromRequest(req types.IssuePassRequest) service.IssuePassParams {
	return service.IssuePassParams{
		Plate:         req.Plate,
		Unit:          req.Unit,
		DurationHours: req.Duration,
	}
}

// statusOf wraps a pass that was just issued; its expiry is always ahead of
// the issue time.
func statusOf(rec store.PassRecord) service.PassStatus {
	return service.PassStatus{PassRecord: rec}
}

func passResponse(p service.PassStatus) types.PassResponse {
	status := "valid"
	if p.Expired {
		status = "expired"
	}
	return types.PassResponse{
		ID:        p.ID,
		Plate:     p.Plate,
		Unit:      p.Unit,
		IssuedAt:  formatTime(p.IssuedAt),
		ExpiresAt: formatTime(p.ExpiresAt),
		Status:    status,
	}
}

// ── Visitors ─────────────────────────────────────────────────────────────────

func checkInParamsFromRequest(req types.CheckInRequest) service.CheckInParams {
	return service.CheckInParams{
		Name:      req.Name,
		Unit:      req.Unit,
		Type:      req.Type,
		GuestPass: req.GuestPass,
		Notes:     req.Notes,
	}
}

func visitorResponse(v store.VisitorRecord) types.VisitorResponse {
	resp := types.VisitorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Unit:      v.Unit,
		Type:      v.Type,
		GuestPass: v.GuestPass,
		Notes:     v.Notes,
		CheckInAt: formatTime(v.CheckInAt),
		Status:    "on_site",
	}
	if v.CheckOutAt != nil {
		resp.CheckOutAt = formatTime(*v.CheckOutAt)
		resp.Status = "checked_out"
	}
	return resp
}

// ── Violations ───────────────────────────────────────────────────────────────

func violationParamsFromRequest(req types.RecordViolationRequest) service.RecordViolationParams {
	return service.RecordViolationParams{
		Plate:  req.Plate,
		Reason: req.Reason,
		Action: req.Action,
		Notes:  req.Notes,
	}
}

func violationResponse(v store.ViolationRecord) types.ViolationResponse {
	return types.ViolationResponse{
		ID:         v.ID,
		Plate:      v.Plate,
		Reason:     v.Reason,
		Action:     v.Action,
		Notes:      v.Notes,
		RecordedAt: formatTime(v.RecordedAt),
	}
}

// ── Residents ────────────────────────────────────────────────────────────────

func residentParamsFromRequest(unit string, req types.SaveResidentRequest) service.SaveResidentParams {
	return service.SaveResidentParams{
		Unit:         unit,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PrimaryPlate: req.PrimaryPlate,
	}
}

func residentResponse(r store.ResidentRecord) types.ResidentResponse {
	return types.ResidentResponse{
		Unit:         r.Unit,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		PrimaryPlate: r.PrimaryPlate,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
}

// ── Reports ──────────────────────────────────────────────────────────────────

func forecastResponse(hours int, buckets []service.ForecastBucket) types.ExpirationForecastResponse {
	resp := types.ExpirationForecastResponse{
		WindowHours: hours,
		Buckets:     make([]types.ForecastBucket, 0, len(buckets)),
	}
	for _, b := range buckets {
		resp.Buckets = append(resp.Buckets, types.ForecastBucket{Hour: formatTime(b.Start), Count: b.Count})
	}
	return resp
}
