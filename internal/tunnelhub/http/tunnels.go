package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/store"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
	"github.com/aussiebroadwan/tunnelhub/pkg/slogx"
)

type TunnelsHandler struct {
	TunnelService *service.TunnelService
}

// HandleList handles GET /api/tunnels
//
//	@Summary		List tunnels
//	@Description	Aggregates tunnels across every configured account, or only the given user's when user_id names a configured user.
//	@Description	Accounts whose relay API call fails contribute no tunnels.
//	@Tags			Tunnels
//	@Produce		json
//	@Param			user_id	query		string	false	"Restrict to one user"
//	@Success		200		{object}	hubsdk.TunnelListResponse
//	@Failure		429		{object}	hubsdk.ErrorResponse	"Too many requests"
//	@Security		BearerAuth
//	@Router			/api/tunnels [get]
func (h *TunnelsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	list, err := h.TunnelService.List(r.Context(), userID)
	if err != nil {
		slogx.FromContext(r.Context()).Warn("tunnel listing aborted", "error", err)
		httpx.WriteDetail(w, http.StatusServiceUnavailable, "Tunnel listing unavailable")
		return
	}

	resp := hubsdk.TunnelListResponse{
		Success:    true,
		Tunnels:    make([]hubsdk.Tunnel, len(list.Tunnels)),
		TotalCount: len(list.Tunnels),
		Timestamp:  list.Timestamp.Format(time.RFC3339),
	}
	if list.FilteredUser != "" {
		resp.FilteredUser = &list.FilteredUser
	}
	for i, t := range list.Tunnels {
		resp.Tunnels[i] = domainToSDKTunnel(t)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSetName handles PUT /api/tunnels/{id}/name
//
//	@Summary		Set a tunnel's custom name
//	@Description	Stores a display name (1 to 100 characters after trimming) for a tunnel.
//	@Tags			Tunnels
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Tunnel ID"
//	@Param			body	body		hubsdk.SetTunnelNameRequest	true	"New name"
//	@Success		200		{object}	hubsdk.SetTunnelNameResponse
//	@Failure		400		{object}	hubsdk.ErrorResponse	"Invalid name"
//	@Failure		401		{object}	hubsdk.ErrorResponse	"Unauthorized"
//	@Failure		413		{object}	hubsdk.ErrorResponse	"Request body too large"
//	@Failure		500		{object}	hubsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/tunnels/{id}/name [put]
func (h *TunnelsHandler) HandleSetName(w http.ResponseWriter, r *http.Request) {
	tunnelID := r.PathValue("id")

	var req hubsdk.SetTunnelNameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.WriteDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.TunnelService.SetName(r.Context(), tunnelID, req.CustomName)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidName), errors.Is(err, store.ErrInvalidInput):
		httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	default:
		slogx.FromContext(r.Context()).Error("failed to store custom name", "tunnel_id", tunnelID, "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to store custom name")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.SetTunnelNameResponse{
		Success:    true,
		Message:    "Custom name updated successfully",
		TunnelID:   tunnelID,
		CustomName: name,
	})
}

// HandleClearName handles DELETE /api/tunnels/{id}/name
//
//	@Summary		Clear a tunnel's custom name
//	@Description	Removes the display name of a tunnel. Succeeds when no name is set.
//	@Tags			Tunnels
//	@Produce		json
//	@Param			id	path		string	true	"Tunnel ID"
//	@Success		200	{object}	hubsdk.MessageResponse
//	@Failure		401	{object}	hubsdk.ErrorResponse	"Unauthorized"
//	@Failure		500	{object}	hubsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/tunnels/{id}/name [delete]
func (h *TunnelsHandler) HandleClearName(w http.ResponseWriter, r *http.Request) {
	tunnelID := r.PathValue("id")

	if err := h.TunnelService.ClearName(r.Context(), tunnelID); err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		slogx.FromContext(r.Context()).Error("failed to clear custom name", "tunnel_id", tunnelID, "error", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "Failed to clear custom name")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.MessageResponse{
		Success: true,
		Message: "Custom name cleared",
	})
}

// HandleHealth handles GET /api/tunnels/health/{id}
//
//	@Summary		Tunnel health check
//	@Tags			Tunnels
//	@Param			id	path		string	true	"Tunnel ID"
//	@Failure		501	{object}	hubsdk.ErrorResponse	"Not implemented"
//	@Router			/api/tunnels/health/{id} [get]
func (h *TunnelsHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteDetail(w, http.StatusNotImplemented, "Tunnel health check not yet implemented")
}

// HandleDelete handles DELETE /api/tunnels/{id}
//
//	@Summary		Delete a tunnel
//	@Tags			Tunnels
//	@Param			id	path		string	true	"Tunnel ID"
//	@Failure		501	{object}	hubsdk.ErrorResponse	"Not implemented"
//	@Router			/api/tunnels/{id} [delete]
func (h *TunnelsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	httpx.WriteDetail(w, http.StatusNotImplemented, "Tunnel deletion not yet implemented")
}

func domainToSDKTunnel(t domain.Tunnel) hubsdk.Tunnel {
	return hubsdk.Tunnel{
		ID:              t.ID,
		PublicURL:       t.PublicURL,
		Proto:           t.Proto,
		Region:          t.Region,
		TunnelSessionID: t.TunnelSessionID,
		ForwardsTo:      t.ForwardsTo,
		CreatedAt:       t.CreatedAt,
		Metadata:        t.Metadata,
		UserID:          t.UserID,
		UserName:        t.UserName,
		CustomName:      t.CustomName,
		Status:          string(t.Status),
	}
}
