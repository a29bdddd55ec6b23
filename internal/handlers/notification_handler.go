package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/middleware"
	"github.com/aurumbay/aurumbay/internal/models"
)

// ListNotifications returns the viewer's feed plus their unread count.
func ListNotifications(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		notifications := co.ListForUser(viewerID)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"data":         notifications,
			"total":        len(notifications),
			"unread_count": co.UnreadCount(viewerID),
		})
	}
}

func MarkNotificationRead(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
			return
		}

		if err := co.MarkAsRead(c.Request.Context(), viewerID, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"unread_count": co.UnreadCount(viewerID)}, "marked as read"))
	}
}

func MarkAllNotificationsRead(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := co.MarkAllAsRead(c.Request.Context(), viewerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"unread_count": 0}, "all marked as read"))
	}
}

func DeleteNotification(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
			return
		}

		if err := co.DeleteNotification(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "notification deleted"))
	}
}

func ClearNotifications(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := co.ClearAll(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "notifications cleared"))
	}
}
