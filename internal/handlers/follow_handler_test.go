package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/repositories"
	"github.com/frekans/backend/internal/repositories/stubs"
	"github.com/frekans/backend/internal/services"
	"github.com/frekans/backend/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	echo          *echo.Echo
	followGraph   *services.FollowGraph
	messagingGate *services.MessagingGate
	messageRepo   *stubs.MessageRepositoryStub
	userRepo      repositories.UserRepository
}

func newTestEnv(t *testing.T, userCount int) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	for i := 1; i <= userCount; i++ {
		user := &models.User{
			ID:       uint(i),
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
		}
		if err := userRepo.CreateUser(user); err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
	}
	messageRepo := stubs.NewMessageRepositoryStub()
	followGraph := services.NewFollowGraph(followRepo, userRepo)

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &testEnv{
		echo:          e,
		followGraph:   followGraph,
		messagingGate: services.NewMessagingGate(messageRepo, followGraph),
		messageRepo:   messageRepo,
		userRepo:      userRepo,
	}
}

// newRequestContext builds an echo context carrying a JSON body and, when
// userID is non-zero, the claims the JWT middleware would have attached.
func (env *testEnv) newRequestContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID, RegisteredClaims: jwt.RegisteredClaims{}})
	}
	return c, rec
}

func httpStatusOf(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return httpErr.Code
}

func TestToggleFollowEndpoint(t *testing.T) {
	env := newTestEnv(t, 2)
	h := NewFollowHandler(env.followGraph, nil)

	c, rec := env.newRequestContext(http.MethodPost, "/api/v1/follow", `{"following_id": 2}`, 1)
	if err := h.ToggleFollow(c); err != nil {
		t.Fatalf("toggle follow: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    models.FollowStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Data.IsFollowing || resp.Data.IsFriend {
		t.Errorf("first toggle data = %+v, want following without friendship", resp.Data)
	}

	// Toggling again unfollows
	c, rec = env.newRequestContext(http.MethodPost, "/api/v1/follow", `{"following_id": 2}`, 1)
	if err := h.ToggleFollow(c); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.IsFollowing {
		t.Errorf("second toggle data = %+v, want unfollowed", resp.Data)
	}
}

func TestToggleFollowEndpointErrors(t *testing.T) {
	env := newTestEnv(t, 2)
	h := NewFollowHandler(env.followGraph, nil)

	// Unauthenticated
	c, _ := env.newRequestContext(http.MethodPost, "/api/v1/follow", `{"following_id": 2}`, 0)
	if code := httpStatusOf(t, h.ToggleFollow(c)); code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", code)
	}

	// Self-follow
	c, _ = env.newRequestContext(http.MethodPost, "/api/v1/follow", `{"following_id": 1}`, 1)
	if code := httpStatusOf(t, h.ToggleFollow(c)); code != http.StatusBadRequest {
		t.Errorf("self-follow status = %d, want 400", code)
	}

	// Unknown target
	c, _ = env.newRequestContext(http.MethodPost, "/api/v1/follow", `{"following_id": 99}`, 1)
	if code := httpStatusOf(t, h.ToggleFollow(c)); code != http.StatusNotFound {
		t.Errorf("unknown target status = %d, want 404", code)
	}

	// Missing body field
	c, _ = env.newRequestContext(http.MethodPost, "/api/v1/follow", `{}`, 1)
	if code := httpStatusOf(t, h.ToggleFollow(c)); code != http.StatusBadRequest {
		t.Errorf("missing following_id status = %d, want 400", code)
	}
}

func TestGetFollowersEndpoint(t *testing.T) {
	env := newTestEnv(t, 3)
	h := NewFollowHandler(env.followGraph, nil)

	// 2 and 3 follow 1; viewer 2 also follows 3
	for _, p := range [][2]uint{{2, 1}, {3, 1}, {2, 3}, {3, 2}} {
		if _, err := env.followGraph.ToggleFollow(p[0], p[1]); err != nil {
			t.Fatalf("toggle %v: %v", p, err)
		}
	}

	c, rec := env.newRequestContext(http.MethodGet, "/api/v1/users/1/followers", "", 2)
	c.SetPath("/users/:id/followers")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("get followers: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data []models.FollowListEntry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d followers, want 2", len(resp.Data))
	}
	for _, entry := range resp.Data {
		if entry.UserID == 3 && (!entry.IsFollowedByViewer || !entry.IsFriend) {
			t.Errorf("entry for user 3 = %+v, want viewer flags set", entry)
		}
	}

	// Unknown user
	c, _ = env.newRequestContext(http.MethodGet, "/api/v1/users/9/followers", "", 2)
	c.SetPath("/users/:id/followers")
	c.SetParamNames("id")
	c.SetParamValues("9")
	if code := httpStatusOf(t, h.GetFollowers(c)); code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", code)
	}
}
