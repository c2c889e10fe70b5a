package http

import (
	"net/http"

	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/swaggo/swag"
)

// APIIndexHandler godoc
//
//	@Summary		API index
//	@Description	Lists the available endpoints grouped by area
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	hubsdk.APIIndexResponse
//	@Router			/api [get]
func APIIndexHandler(appName, version string) http.HandlerFunc {
	resp := hubsdk.APIIndexResponse{
		Name:        appName + " API",
		Version:     version,
		Description: "Secure ngrok tunnel management dashboard",
		Endpoints: map[string]map[string]string{
			"authentication": {
				"GET /api/public-key": "Get RSA public key for encryption",
				"POST /api/verify":    "Verify login with encrypted password",
				"POST /api/logout":    "Logout current session",
			},
			"tunnels": {
				"GET /api/tunnels":              "Get all tunnels (with optional user filter)",
				"PUT /api/tunnels/{id}/name":    "Set custom tunnel name",
				"DELETE /api/tunnels/{id}/name": "Clear custom tunnel name",
			},
			"admin": {
				"GET /api/users":        "Get list of users",
				"GET /api/health":       "Server health check",
				"POST /api/restart":     "Restart server",
				"POST /api/keys/rotate": "Rotate the RSA key pair",
			},
		},
		Documentation: "/docs",
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// OpenAPIHandler serves the registered Swagger document.
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		httpx.WriteDetail(w, http.StatusInternalServerError, "API documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
