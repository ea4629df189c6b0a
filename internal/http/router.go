package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; no third-party router needed
// for a surface this small.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler registers a plain http.Handler (metrics, pprof).
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterCheckRoutes wires weekly plans, check completion and the
// delayed-check scan.
func (r *Router) RegisterCheckRoutes(h *CheckHandler) {
	r.Handle("/api/v1/weekly-plans", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.CreatePlan(w, req)
	})

	// /api/v1/weekly-plans/{year}/{week}
	r.Handle("/api/v1/weekly-plans/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetWeek(w, req)
	})

	// /api/v1/checks/{checkId}/complete
	r.Handle("/api/v1/checks/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPut || !strings.HasSuffix(req.URL.Path, "/complete") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.CompleteCheck(w, req)
	})

	r.Handle("/api/v1/delayed-checks", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetDelayed(w, req)
	})

	r.Handle("/api/v1/delayed-checks/dispatch", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.DispatchDelayed(w, req)
	})
}

// RegisterDeviceRoutes wires the device catalog.
func (r *Router) RegisterDeviceRoutes(h *DeviceHandler) {
	r.Handle("/api/v1/devices", h.ServeCollection)
	r.Handle("/api/v1/devices/", h.ServeItem)
}

// RegisterSettingsRoutes wires the notification roster.
func (r *Router) RegisterSettingsRoutes(h *SettingsHandler) {
	r.Handle("/api/v1/notification-settings", h.ServeHTTP)
}
