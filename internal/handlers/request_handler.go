package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/middleware"
	"github.com/aurumbay/aurumbay/internal/models"
)

func CreateBuyRequest(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req struct {
			ItemID   uuid.UUID `json:"item_id" binding:"required"`
			SellerID uuid.UUID `json:"seller_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		created, err := co.CreateBuyRequest(c.Request.Context(), req.ItemID, viewerID, req.SellerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "buy request created"))
	}
}

func AcceptBuyRequest(co *core.Core) gin.HandlerFunc {
	return decideBuyRequest(co, true)
}

func DeclineBuyRequest(co *core.Core) gin.HandlerFunc {
	return decideBuyRequest(co, false)
}

func decideBuyRequest(co *core.Core, accept bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
			return
		}

		var decided *models.BuyRequest
		if accept {
			decided, err = co.AcceptBuyRequest(c.Request.Context(), viewerID, requestID)
		} else {
			decided, err = co.DeclineBuyRequest(c.Request.Context(), viewerID, requestID)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(decided, "request "+string(decided.Status)))
	}
}

func GetBuyRequest(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
			return
		}

		req, err := co.GetBuyRequest(requestID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"request": req,
			"history": co.RequestStatusHistory(requestID),
		}, ""))
	}
}

// ListMyBuyRequests returns the viewer's requests as customer.
func ListMyBuyRequests(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		reqs := co.ListRequestsForCustomer(viewerID)
		c.JSON(http.StatusOK, models.ListResponse(reqs, len(reqs)))
	}
}

// ListIncomingBuyRequests returns the viewer's requests as seller.
func ListIncomingBuyRequests(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		reqs := co.ListRequestsForSeller(viewerID)
		c.JSON(http.StatusOK, models.ListResponse(reqs, len(reqs)))
	}
}
