package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

func (a *api) getUser(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := a.users.Get(ctx, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, users.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (a *api) updateUser(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	var req validation.UpdateUserRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if err := a.users.UpdateContact(ctx, userID, req.Name, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

func (a *api) addAddress(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.AddAddressRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	u, err := a.users.Get(ctx, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, users.ErrNotFound)
		return
	}

	addr := users.Address{
		ID:           uuid.NewString(),
		Label:        req.Label,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsDefault:    req.IsDefault || len(u.Addresses) == 0,
	}

	next := make([]users.Address, len(u.Addresses))
	copy(next, u.Addresses)
	if addr.IsDefault {
		for i := range next {
			next[i].IsDefault = false
		}
	}
	next = append(next, addr)

	// The whole list is replaced under the version we read; a concurrent
	// address edit surfaces as a 409 rather than being overwritten.
	if err := a.users.SetAddresses(ctx, req.UserID, next, u.Version); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"addressId": addr.ID})
}

func (a *api) listAddresses(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := a.users.Get(ctx, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, users.ErrNotFound)
		return
	}
	addresses := u.Addresses
	if addresses == nil {
		addresses = []users.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (a *api) addToWishlist(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.WishlistRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if err := a.users.AddToWishlist(ctx, req.UserID, req.ProductID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "added to wishlist"})
}

func (a *api) removeFromWishlist(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.WishlistRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if err := a.users.RemoveFromWishlist(ctx, req.UserID, req.ProductID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}

// getWishlist resolves the saved ids into product documents; ids whose
// product has since been deactivated are dropped from the response.
func (a *api) getWishlist(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := a.users.Get(ctx, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, users.ErrNotFound)
		return
	}

	products := []catalog.Product{}
	if len(u.Wishlist) > 0 {
		resolved, err := a.catalog.GetMany(ctx, u.Wishlist)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, id := range u.Wishlist {
			if p, ok := resolved[id]; ok && p.IsActive {
				products = append(products, p)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": products})
}
