package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/repositories"
	"github.com/frekans/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles user directory HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	followGraph    *services.FollowGraph
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followGraph *services.FollowGraph) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		followGraph:    followGraph,
	}
}

// RegisterUserRoutes registers user directory routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetProfile)
}

// GetProfile returns a user's public profile with its cached degree counters
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// SearchUsers searches users by username. Each row is annotated with the
// caller's follow and friend state toward that user.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if len(query) < 2 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": []models.UserSearchResult{}})
	}

	currentUserID := getUserIDFromContext(c)
	users, err := h.userRepository.SearchUsers(query, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	followed, friends, err := h.followGraph.FollowFlags(currentUserID, ids)
	if err != nil {
		return translateServiceError(err)
	}

	results := make([]models.UserSearchResult, len(users))
	for i, u := range users {
		results[i] = models.UserSearchResult{
			ID:             u.ID,
			Username:       u.Username,
			Bio:            u.Bio,
			AvatarURL:      u.AvatarURL,
			IsVerified:     u.IsVerified,
			FollowerCount:  u.FollowerCount,
			FollowingCount: u.FollowingCount,
			IsFollowing:    followed[u.ID],
			IsFriend:       friends[u.ID],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}
