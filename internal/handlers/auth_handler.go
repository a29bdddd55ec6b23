package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/aurumbay/aurumbay/internal/core"
	"github.com/aurumbay/aurumbay/internal/helpers"
	"github.com/aurumbay/aurumbay/internal/middleware"
	"github.com/aurumbay/aurumbay/internal/models"
)

func Signup(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		user, err := co.Signup(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "account created"))
	}
}

func Login(co *core.Core, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		user, err := co.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := helpers.IssueSessionToken(jwtSecret, user.ID, user.Email, user.Username, string(user.Role))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie(
			"access_token",
			token,
			3600*24,
			"/",
			"", // let Gin pick current domain
			isProduction,
			true,
		)

		c.JSON(http.StatusOK, models.SuccessResponse(user, "logged in"))
	}
}

// Logout clears the session cookie; persisted user records are untouched.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// Profile returns the authenticated viewer's record.
func Profile(co *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID, ok := middleware.ViewerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := co.GetUser(viewerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
