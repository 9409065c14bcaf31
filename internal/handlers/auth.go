package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

func (a *api) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.RegisterRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		respondError(c, users.ErrEmailTaken)
		return
	}

	hash, err := a.auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	u := users.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := a.users.Create(ctx, u); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": u.ID, "name": u.Name, "email": u.Email})
}

func (a *api) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.LoginRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	u, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(c, err)
		return
	}
	// Same response whether the account is missing or the password is wrong.
	if u == nil || u.PasswordHash == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}
	ok, err := a.auth.VerifyPassword(u.PasswordHash, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": u.ID, "name": u.Name, "email": u.Email})
}

// guestSession creates a throwaway user so carts and measurements can be
// attached before registration.
func (a *api) guestSession(c *gin.Context) {
	ctx := c.Request.Context()

	u := users.User{
		ID:      uuid.NewString(),
		IsGuest: true,
	}
	if err := a.users.Create(ctx, u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"userId": u.ID, "isGuest": true})
}
