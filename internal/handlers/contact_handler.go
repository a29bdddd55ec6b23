package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/middleware"
	"github.com/aurumbay/aurumbay/internal/models"
)

func ContactDealer(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		dealerID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dealer id"})
			return
		}

		rec, err := co.ContactDealer(c.Request.Context(), viewerID, dealerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rec, "contact recorded"))
	}
}

// ListMyCustomers returns the viewer-as-seller's customer list derived from
// the contact ledger.
func ListMyCustomers(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		customers := co.CustomersForSeller(viewerID)
		c.JSON(http.StatusOK, models.ListResponse(customers, len(customers)))
	}
}
