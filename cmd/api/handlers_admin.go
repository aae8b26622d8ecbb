package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tahsinkabir/marketmind/internal/account"
	"github.com/tahsinkabir/marketmind/internal/metrics"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

// List all users endpoint
func (api *API) listUsers(c *gin.Context) {
	users, err := api.account.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": sanitizeAll(users),
		"total": len(users),
	})
}

// Admin plan override endpoint
func (api *API) adminSetPlan(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		Plan models.Plan `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.account.SetUserPlan(c.Request.Context(), email, req.Plan); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, account.ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, account.ErrAdminAccount):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	metrics.RecordPlanChange(string(req.Plan))
	c.JSON(http.StatusOK, gin.H{"message": "Plan updated"})
}

// Admin status override endpoint
func (api *API) adminSetStatus(c *gin.Context) {
	email := c.Param("email")

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.account.SetUserStatus(c.Request.Context(), email, req.Status); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, account.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, account.ErrAdminAccount):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// Activity feed endpoint
func (api *API) listActivities(c *gin.Context) {
	activities, err := api.account.Activities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"total":      len(activities),
	})
}
