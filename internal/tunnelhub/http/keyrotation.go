package http

import (
	"net/http"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// KeyRotationHandler replaces the RSA key pair used for password encryption.
type KeyRotationHandler struct {
	KeyRotationService *service.KeyRotationService
}

// HandleRotate handles POST /api/keys/rotate
//
//	@Summary		Rotate the RSA key pair
//	@Description	Generates a new key pair. Existing sessions stay valid; clients must refetch the public key before logging in.
//	@Tags			Keys
//	@Produce		json
//	@Success		200	{object}	hubsdk.RotateKeyResponse
//	@Failure		401	{object}	hubsdk.ErrorResponse	"Unauthorized"
//	@Failure		403	{object}	hubsdk.ErrorResponse	"Forbidden"
//	@Failure		500	{object}	hubsdk.ErrorResponse	"Internal Server Error"
//	@Security		BearerAuth
//	@Router			/api/keys/rotate [post]
func (h *KeyRotationHandler) HandleRotate(w http.ResponseWriter, r *http.Request) {
	if h.KeyRotationService == nil {
		httpx.WriteDetail(w, http.StatusInternalServerError, "Key rotation service not initialized")
		return
	}

	resp, err := h.KeyRotationService.Rotate(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("key rotation failed", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Key rotation failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.RotateKeyResponse{
		Success: true,
		Message: "Key pair rotated",
		KeySize: resp.KeySize,
	})
}
