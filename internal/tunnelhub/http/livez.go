package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always returns 200 OK while the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	hubsdk.ProbeResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, hubsdk.ProbeResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
