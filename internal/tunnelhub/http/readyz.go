package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether RSA key material is available and the custom-name store is reachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	hubsdk.ProbeResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	hubsdk.ProbeResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, keys *keyx.Manager, names store.Names) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &hubsdk.ProbeChecks{
			Keys:  "ok",
			Store: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if _, _, err := keys.PublicKeyPEM(); err != nil {
			checks.Keys = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := names.Ping(r.Context()); err != nil {
			checks.Store = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, hubsdk.ProbeResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
