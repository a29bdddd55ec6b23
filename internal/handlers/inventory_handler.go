package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/middleware"
	"github.com/aurumbay/aurumbay/internal/models"
)

func AddItem(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var item models.InventoryItem
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		created, err := co.AddItem(c.Request.Context(), viewerID, item)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(created, "item added"))
	}
}

func UpdateItem(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		var patch models.ItemPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		updated, err := co.UpdateItem(c.Request.Context(), viewerID, itemID, patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(updated, "item updated"))
	}
}

func DeleteItem(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		if err := co.DeleteItem(c.Request.Context(), viewerID, itemID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "item deleted"))
	}
}

func ToggleVisibility(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}

		item, err := co.ToggleVisibility(c.Request.Context(), viewerID, itemID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(item, "visibility toggled"))
	}
}

// quotedItem pairs an item with its computed buy/sell quote.
type quotedItem struct {
	models.InventoryItem
	Quote models.ItemQuote `json:"quote"`
}

func quoteItems(items []models.InventoryItem, spotPrices map[string]float64) []quotedItem {
	out := make([]quotedItem, 0, len(items))
	for _, it := range items {
		out = append(out, quotedItem{
			InventoryItem: it,
			Quote:         it.Quote(spotPrices[string(it.ProductType)]),
		})
	}
	return out
}

// ListItems returns the customer-visible catalogue with buy/sell quotes
// rendered from the spot table.
func ListItems(co *core.Core, spotPrices map[string]float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := co.ListAllItems(false)
		quoted := quoteItems(items, spotPrices)
		c.JSON(http.StatusOK, models.ListResponse(quoted, len(quoted)))
	}
}

// ListSellerItems returns one seller's full inventory, hidden items included.
func ListSellerItems(co *core.Core, spotPrices map[string]float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, err := uuid.Parse(c.Param("seller_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seller id"})
			return
		}

		items := co.ListItemsForSeller(sellerID)
		quoted := quoteItems(items, spotPrices)
		c.JSON(http.StatusOK, models.ListResponse(quoted, len(quoted)))
	}
}
