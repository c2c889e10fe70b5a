package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/keyx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

// AuthHandler serves the credential exchange: public key discovery, login
// and logout.
type AuthHandler struct {
	Keys        *keyx.Manager
	Credentials *service.CredentialService
	Sessions    *service.SessionService
}

// HandlePublicKey handles GET /api/public-key
//
//	@Summary		Get RSA public key
//	@Description	Returns the PEM public key clients must encrypt passwords with (PKCS#1 v1.5). Exempt from rate limiting.
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	hubsdk.PublicKeyResponse
//	@Failure		500	{object}	hubsdk.ErrorResponse	"No key material available"
//	@Router			/api/public-key [get]
func (h *AuthHandler) HandlePublicKey(w http.ResponseWriter, r *http.Request) {
	pemBytes, bits, err := h.Keys.PublicKeyPEM()
	if err != nil {
		slogx.FromContext(r.Context()).Error("public key unavailable", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Public key not available")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.PublicKeyResponse{
		PublicKey: string(pemBytes),
		KeySize:   bits,
	})
}

// HandleVerify handles POST /api/verify
//
//	@Summary		Log in
//	@Description	Decrypts the submitted password and, if it matches the admin password, issues a session token.
//	@Description	A wrong password is reported with success=false and status 200.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		hubsdk.VerifyRequest	true	"Encrypted password"
//	@Success		200		{object}	hubsdk.VerifyResponse
//	@Failure		400		{object}	hubsdk.ErrorResponse	"Authentication failed"
//	@Failure		413		{object}	hubsdk.ErrorResponse	"Request body too large"
//	@Failure		429		{object}	hubsdk.ErrorResponse	"Too many requests"
//	@Failure		500		{object}	hubsdk.ErrorResponse	"No key material available"
//	@Router			/api/verify [post]
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req hubsdk.VerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.WriteDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		log.Debug("invalid verify request", "error", err)
		httpx.WriteDetail(w, http.StatusBadRequest, "Authentication failed")
		return
	}
	if req.EncryptedPassword == "" {
		httpx.WriteDetail(w, http.StatusBadRequest, "Authentication failed")
		return
	}

	err := h.Credentials.Authenticate(r.Context(), req.EncryptedPassword)
	switch {
	case err == nil:
		sess := h.Sessions.Create(true, "")
		httpx.WriteJSON(w, http.StatusOK, hubsdk.VerifyResponse{
			Success:      true,
			SessionToken: sess.Token,
			Message:      "Login successful",
		})

	case errors.Is(err, service.ErrInvalidCredentials):
		log.Info("login rejected", "client_ip", httpx.ClientIPFromContext(r.Context()))
		httpx.WriteJSON(w, http.StatusOK, hubsdk.VerifyResponse{
			Success: false,
			Message: "Invalid password",
		})

	case errors.Is(err, service.ErrDecryptionFailed):
		httpx.WriteDetail(w, http.StatusBadRequest, "Authentication failed")

	default:
		log.Error("login failed", "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Authentication unavailable")
	}
}

// HandleLogout handles POST /api/logout
//
//	@Summary		Log out
//	@Description	Invalidates the presented session token. Succeeds even when the token is missing or unknown.
//	@Tags			Authentication
//	@Produce		json
//	@Success		200	{object}	hubsdk.MessageResponse
//	@Security		BearerAuth
//	@Router			/api/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := httpx.BearerToken(r); ok {
		h.Sessions.Invalidate(token)
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
