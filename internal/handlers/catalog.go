package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/catalog"
)

func (a *api) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	f := catalog.ListFilter{
		Category:          c.Query("category"),
		Occasion:          c.Query("occasion"),
		Fabric:            c.Query("fabric"),
		Search:            c.Query("search"),
		FitAdjustmentOnly: c.Query("fitAdjustment") == "true",
		Sort:              c.DefaultQuery("sort", "popular"),
		Limit:             queryInt(c, "limit", 20),
		Skip:              queryInt(c, "skip", 0),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}

	page, total, err := a.catalog.List(ctx, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": page, "total": total, "limit": f.Limit, "skip": f.Skip})
}

func (a *api) getProduct(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := a.catalog.Get(ctx, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) listCategories(c *gin.Context) {
	ctx := c.Request.Context()

	cats, err := a.catalog.ListCategories(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
