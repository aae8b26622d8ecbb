package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tahsinkabir/marketmind/internal/auth"
	"github.com/tahsinkabir/marketmind/internal/metrics"
	"github.com/tahsinkabir/marketmind/internal/middleware"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

// sanitize strips the credential hash before a record leaves the API.
func sanitize(u *models.User) *models.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

func sanitizeAll(users []*models.User) []*models.User {
	out := make([]*models.User, len(users))
	for i, u := range users {
		out[i] = sanitize(u)
	}
	return out
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Register endpoint
func (api *API) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := api.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "এই ইমেইল দিয়ে ইতিমধ্যে রেজিস্টার করা আছে।"})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"user":  sanitize(user),
		"token": token,
	})
}

// Login endpoint
func (api *API) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := api.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordLogin("failure")
		switch {
		case errors.Is(err, auth.ErrInactiveAccount):
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account is inactive. Please contact support."})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	metrics.RecordLogin("success")
	c.JSON(http.StatusOK, gin.H{
		"user":  sanitize(user),
		"token": token,
	})
}

// Logout endpoint
func (api *API) logout(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	if err := api.auth.Logout(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Get current account endpoint
func (api *API) getMe(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	user, err := api.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sanitize(user))
}

// Select plan endpoint
func (api *API) selectPlan(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	var req struct {
		Plan models.Plan `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := api.account.SelectPlan(c.Request.Context(), email, req.Plan)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		} else if !req.Plan.Valid() {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	metrics.RecordPlanChange(string(req.Plan))
	c.JSON(http.StatusOK, sanitize(user))
}

// Set daily social post endpoint
func (api *API) setDailyPost(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	var req models.DailySocialPost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := api.account.SetDailySocialPost(c.Request.Context(), email, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sanitize(user))
}

// Clear daily social post endpoint
func (api *API) clearDailyPost(c *gin.Context) {
	email, _ := middleware.GetUserEmail(c)

	user, err := api.account.SetDailySocialPost(c.Request.Context(), email, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sanitize(user))
}
