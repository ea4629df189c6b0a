package httpapi

import (
	"net/http"

	"maintcheck/internal/service"

	"go.uber.org/zap"
)

// SettingsHandler exposes the notification roster.
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, logger: logger}
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSettings(w, r)
	case http.MethodPut:
		h.putSettings(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	ids, err := h.settingsService.GetSelectedEmployees(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"selectedEmployees": ids}))
}

// PUT /api/v1/notification-settings
// body: { selectedEmployees }
func (h *SettingsHandler) putSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SelectedEmployees []string `json:"selectedEmployees"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if err := h.settingsService.SetSelectedEmployees(r.Context(), req.SelectedEmployees); err != nil {
		h.logger.Warn("SetSelectedEmployees failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"selectedEmployees": req.SelectedEmployees}))
}
