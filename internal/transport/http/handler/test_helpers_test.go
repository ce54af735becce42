package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"splitmate/internal/app"
	"splitmate/internal/repository"
	"splitmate/internal/transport/http/middleware"
	"splitmate/internal/transport/http/response"
)

const testSecret = "test-secret-0123456789abcdef"

// newTestRouter wires the API routes against in-memory stores, without
// Redis or RabbitMQ, mirroring the wiring in server.go.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	groups := repository.NewMemoryGroupRepository(users)
	activities := repository.NewMemoryActivityRepository()

	authService := app.NewAuthService(users, nil, testSecret, time.Hour, bcrypt.MinCost)
	groupService := app.NewGroupService(groups, nil, nil)
	activityService := app.NewActivityService(activities)

	authHandler := NewAuthHandler(authService, true)
	groupHandler := NewGroupHandler(groupService, true)
	activityHandler := NewActivityHandler(activityService)

	router := gin.New()
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", middleware.AuthJWT(testSecret), authHandler.Logout)

	groupRoutes := api.Group("/groups")
	groupRoutes.Use(middleware.AuthJWT(testSecret))
	groupRoutes.POST("", groupHandler.Create)
	groupRoutes.GET("", groupHandler.List)
	groupRoutes.GET("/:id", groupHandler.Details)

	api.GET("/activities", middleware.AuthJWT(testSecret), activityHandler.List)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return resp, envelope
}

func dataAsMap(t *testing.T, envelope response.APIResponse) map[string]any {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok, "expected object data, got %T", envelope.Data)
	return data
}
