package http

import (
	"errors"
	"math"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// HealthHandler godoc
//
//	@Summary		Server health
//	@Description	Returns process id, platform and uptime
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	hubsdk.HealthResponse
//	@Router			/api/health [get]
func HealthHandler(startTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(startTime).Seconds()
		httpx.WriteJSON(w, http.StatusOK, hubsdk.HealthResponse{
			Status:        "running",
			PID:           os.Getpid(),
			Platform:      runtime.GOOS,
			UptimeSeconds: math.Round(uptime*100) / 100,
		})
	}
}

// RestartHandler re-executes the server after checking the admin password.
type RestartHandler struct {
	Credentials *service.CredentialService
	Restart     func()
	Delay       time.Duration
}

// HandleRestart handles POST /api/restart
//
//	@Summary		Restart the server
//	@Description	Checks the admin password sent in the body, then restarts the process after a short delay so the response can be delivered.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		hubsdk.RestartRequest	true	"Admin password"
//	@Success		200		{object}	hubsdk.MessageResponse
//	@Failure		400		{object}	hubsdk.ErrorResponse	"Bad Request"
//	@Failure		401		{object}	hubsdk.ErrorResponse	"Invalid admin password"
//	@Failure		501		{object}	hubsdk.ErrorResponse	"Restart not supported"
//	@Router			/api/restart [post]
func (h *RestartHandler) HandleRestart(w http.ResponseWriter, r *http.Request) {
	var req hubsdk.RestartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.WriteDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	log := slogx.FromContext(r.Context())

	if !h.Credentials.CheckSecret(req.Password) {
		log.Warn("restart rejected", "client_ip", httpx.ClientIPFromContext(r.Context()))
		httpx.WriteDetail(w, http.StatusUnauthorized, "Invalid admin password")
		return
	}

	if h.Restart == nil {
		httpx.WriteDetail(w, http.StatusNotImplemented, "Restart not supported")
		return
	}

	log.Info("server restart scheduled", "delay", h.Delay)
	time.AfterFunc(h.Delay, h.Restart)

	httpx.WriteJSON(w, http.StatusOK, hubsdk.MessageResponse{
		Success: true,
		Message: "Server restart initiated",
	})
}
