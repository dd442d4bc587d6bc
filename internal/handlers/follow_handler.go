package handlers

import (
	"net/http"
	"strconv"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/services"
	"github.com/frekans/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// FollowHandler handles follow toggle and follower listing HTTP requests
type FollowHandler struct {
	followGraph *services.FollowGraph
	metrics     *metrics.Metrics
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followGraph *services.FollowGraph, m *metrics.Metrics) *FollowHandler {
	return &FollowHandler{
		followGraph: followGraph,
		metrics:     m,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow", h.ToggleFollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow follows or unfollows a user on behalf of the authenticated caller
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ToggleFollowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.followGraph.ToggleFollow(currentUserID, req.FollowingID)
	if err != nil {
		return translateServiceError(err)
	}

	if h.metrics != nil {
		state := "unfollowed"
		if status.IsFollowing {
			state = "followed"
		}
		h.metrics.FollowsToggled.WithLabelValues(state).Inc()
	}

	logrus.WithFields(logrus.Fields{
		"follower_id":  currentUserID,
		"following_id": req.FollowingID,
		"is_following": status.IsFollowing,
		"is_friend":    status.IsFriend,
	}).Info("Follow toggled")

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": status})
}

// GetFollowers lists the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	viewerID := getUserIDFromContext(c)
	entries, err := h.followGraph.ListFollowers(uint(userID), viewerID)
	if err != nil {
		return translateServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": entries})
}

// GetFollowing lists the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	viewerID := getUserIDFromContext(c)
	entries, err := h.followGraph.ListFollowing(uint(userID), viewerID)
	if err != nil {
		return translateServiceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": entries})
}
