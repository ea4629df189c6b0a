package httpapi

import (
	"net/http"
	"strings"

	"maintcheck/internal/service"

	"go.uber.org/zap"
)

// DeviceHandler exposes the device catalog.
type DeviceHandler struct {
	deviceService service.DeviceService
	logger        *zap.Logger
}

func NewDeviceHandler(deviceService service.DeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService, logger: logger}
}

// ServeCollection handles /api/v1/devices.
func (h *DeviceHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListDevices(w, r)
	case http.MethodPost:
		h.CreateDevice(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ServeItem handles /api/v1/devices/{id}.
func (h *DeviceHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/devices/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.GetDevice(w, r, id)
	case http.MethodDelete:
		h.DeleteDevice(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceService.ListDevices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(devices))
}

// POST /api/v1/devices
// body: { name, identificationNumber, location, plannedFrequency, planComment }
func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string `json:"name"`
		IdentificationNumber string `json:"identificationNumber"`
		Location             string `json:"location"`
		PlannedFrequency     int    `json:"plannedFrequency"`
		PlanComment          string `json:"planComment"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	device, err := h.deviceService.CreateDevice(r.Context(), service.CreateDeviceRequest{
		Name:                 req.Name,
		IdentificationNumber: req.IdentificationNumber,
		Location:             req.Location,
		PlannedFrequency:     req.PlannedFrequency,
		PlanComment:          req.PlanComment,
	})
	if err != nil {
		h.logger.Warn("CreateDevice failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(device))
}

func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request, id string) {
	device, err := h.deviceService.GetDevice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(device))
}

func (h *DeviceHandler) DeleteDevice(w http.ResponseWriter, r *http.Request, id string) {
	resp, err := h.deviceService.DeleteDevice(r.Context(), id)
	if err != nil {
		h.logger.Warn("DeleteDevice failed", zap.String("device_id", id), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
