package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctors-portal-api/internal/models"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

// upsertUser stores the user keyed by the email path segment and issues a
// bearer token for it. This is the only place tokens are minted.
func (h *Handler) upsertUser(c *gin.Context, email string) {
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	// Body is optional: an upsert with no payload still issues a token.
	_ = c.ShouldBindJSON(&req)

	stored, err := h.Store.UpsertUser(c.Request.Context(), models.User{Name: req.Name, Email: email})
	if err != nil {
		h.Log.Error().Err(err).Str("email", email).Msg("upsert user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save user"})
		return
	}

	token, err := h.Tokens.Generate(email)
	if err != nil {
		h.Log.Error().Err(err).Msg("generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": stored, "token": token})
}

// makeAdmin elevates the target user's role. Guarded by bearer+admin in the
// route dispatch.
func (h *Handler) makeAdmin(c *gin.Context, email string) {
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	err := h.Store.SetUserRole(c.Request.Context(), email, models.RoleAdmin)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("email", email).Msg("set admin role")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "modifiedCount": 1})
}

// CheckAdmin reports whether the given email holds the admin role. An
// unknown email is simply not an admin.
func (h *Handler) CheckAdmin(c *gin.Context) {
	email := c.Param("email")

	user, err := h.Store.UserByEmail(c.Request.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"admin": false})
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Str("email", email).Msg("find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, users)
}
