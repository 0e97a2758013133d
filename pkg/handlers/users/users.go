package users

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/handlers/respond"
	"github.com/skillswap/skill-exchange/pkg/mapping"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// UsersHandler holds the dependencies for user account handlers.
type UsersHandler struct {
	Store storage.ApiStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store storage.ApiStore) *UsersHandler {
	return &UsersHandler{Store: store}
}

// CreateUser handles the logic for creating a user account.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var newUser api.NewUser
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newUser.WalletAddress == "" {
		http.Error(w, "wallet_address is required", http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateUser(r.Context(), mapping.ToDomainNewUser(&newUser))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			http.Error(w, "User for this wallet already exists", http.StatusConflict)
		} else {
			respond.Error(w, err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiUser(created))
}

// GetUserByWallet handles the logic for retrieving a user.
func (h *UsersHandler) GetUserByWallet(w http.ResponseWriter, r *http.Request, walletAddress string) {
	user, err := h.Store.GetUser(r.Context(), walletAddress)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiUser(user))
}

// ListUsers handles the logic for retrieving all users.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiUsers := make([]*api.User, len(users))
	for i := range users {
		apiUsers[i] = mapping.ToApiUser(&users[i])
	}

	respond.JSON(w, http.StatusOK, apiUsers)
}

// DeleteUser handles the logic for deleting a user account.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request, walletAddress string) {
	if err := h.Store.DeleteUser(r.Context(), walletAddress); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
