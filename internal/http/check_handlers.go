package httpapi

import (
	"net/http"
	"strings"
	"time"

	"maintcheck/internal/service"

	"go.uber.org/zap"
)

// CheckHandler exposes the scheduling engine over HTTP.
type CheckHandler struct {
	checkService   service.CheckService
	delayedService service.DelayedService
	logger         *zap.Logger
	now            func() time.Time
}

func NewCheckHandler(checkService service.CheckService, delayedService service.DelayedService, logger *zap.Logger) *CheckHandler {
	return &CheckHandler{
		checkService:   checkService,
		delayedService: delayedService,
		logger:         logger,
		now:            time.Now,
	}
}

// POST /api/v1/weekly-plans
// body: { week, year, deviceIds, assignedBy }
func (h *CheckHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Week       int      `json:"week"`
		Year       int      `json:"year"`
		DeviceIDs  []string `json:"deviceIds"`
		AssignedBy string   `json:"assignedBy"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	resp, err := h.checkService.CreateChecksForPlan(r.Context(), service.CreatePlanRequest{
		Year:       req.Year,
		Week:       req.Week,
		DeviceIDs:  req.DeviceIDs,
		AssignedBy: req.AssignedBy,
	})
	if err != nil {
		h.logger.Warn("CreatePlan failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"plan":          resp.Plan,
		"checksCreated": resp.ChecksCreated,
	}))
}

// GET /api/v1/weekly-plans/{year}/{week}
func (h *CheckHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/weekly-plans/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	year := parseInt(parts[0], 0)
	week := parseInt(parts[1], 0)

	checks, err := h.checkService.ListWeek(r.Context(), year, week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(checks))
}

// PUT /api/v1/checks/{checkId}/complete
// body: { completedBy, comment }
func (h *CheckHandler) CompleteCheck(w http.ResponseWriter, r *http.Request) {
	checkID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/checks/"), "/complete")
	if checkID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req struct {
		CompletedBy string `json:"completedBy"`
		Comment     string `json:"comment"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	resp, err := h.checkService.CompleteCheck(r.Context(), service.CompleteCheckRequest{
		CheckID:     checkID,
		CompletedBy: req.CompletedBy,
		Comment:     req.Comment,
	})
	if err != nil {
		h.logger.Warn("CompleteCheck failed", zap.String("check_id", checkID), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"check": resp.Check,
		"nextCheckScheduled": map[string]any{
			"checkId":      resp.Next.ID,
			"week":         resp.Next.Week,
			"year":         resp.Next.Year,
			"scheduledFor": resp.ScheduledFor,
		},
	}))
}

// GET /api/v1/delayed-checks
// Severity grouping is presentation data; each item carries its
// daysOverdue and severity, unfiltered.
func (h *CheckHandler) GetDelayed(w http.ResponseWriter, r *http.Request) {
	delayed, err := h.delayedService.FindDelayed(r.Context(), h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(delayed))
}

// POST /api/v1/delayed-checks/dispatch
func (h *CheckHandler) DispatchDelayed(w http.ResponseWriter, r *http.Request) {
	result, err := h.delayedService.Dispatch(r.Context(), h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}
