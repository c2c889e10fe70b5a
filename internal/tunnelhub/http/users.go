package http

import (
	"net/http"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/service"
	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/aussiebroadwan/tunnelhub/pkg/httpx"
)

type UsersHandler struct {
	Users *service.UserDirectory
}

// ServeHTTP handles GET /api/users
//
//	@Summary		List users
//	@Description	Returns the configured accounts. API tokens are masked to their last four characters.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	hubsdk.UsersResponse
//	@Failure		401	{object}	hubsdk.ErrorResponse	"Unauthorized"
//	@Failure		403	{object}	hubsdk.ErrorResponse	"Forbidden"
//	@Security		BearerAuth
//	@Router			/api/users [get]
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	redacted := h.Users.Redacted()

	users := make([]hubsdk.User, len(redacted))
	for i, u := range redacted {
		users[i] = hubsdk.User{
			ID:      u.ID,
			Name:    u.Name,
			Tokens:  u.Tokens,
			APIURLs: u.APIURLs,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, hubsdk.UsersResponse{
		Success:    true,
		Users:      users,
		TotalCount: len(users),
	})
}
