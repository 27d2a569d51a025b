package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// publicUser is the profile shown to other users
type publicUser struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Username  string `json:"username"`
	Headline  string `json:"headline"`
	Bio       string `json:"bio"`
	Website   string `json:"website"`
	Instagram string `json:"instagram"`
}

func (h *Handler) getUserByNickname(w http.ResponseWriter, r *http.Request) {
	user, err := h.userDAO.GetUserByNickname(r.Context(), mux.Vars(r)["nickname"])
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}

	h.writeJSON(w, http.StatusOK, publicUser{
		ID:        user.UserID,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Username:  user.Username,
		Headline:  user.Headline,
		Bio:       user.Bio,
		Website:   user.Website,
		Instagram: user.Instagram,
	})
}
