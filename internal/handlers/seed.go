package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/coupons"
)

// seed loads the sample catalog and coupons. Idempotent: a populated
// products table short-circuits so a redeploy cannot duplicate the data.
func (a *api) seed(c *gin.Context) {
	ctx := c.Request.Context()

	n, err := a.catalog.CountProducts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if n > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "already seeded", "products": n})
		return
	}

	now := time.Now().UTC()
	categories := catalog.SampleCategories()
	if err := a.catalog.PutCategories(ctx, categories); err != nil {
		respondError(c, err)
		return
	}
	products := catalog.SampleProducts(now)
	if err := a.catalog.PutProducts(ctx, products); err != nil {
		respondError(c, err)
		return
	}
	sampleCoupons := coupons.SampleCoupons(now)
	for _, cp := range sampleCoupons {
		if err := a.coupons.Put(ctx, cp); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "seeded",
		"products":   len(products),
		"categories": len(categories),
		"coupons":    len(sampleCoupons),
	})
}
