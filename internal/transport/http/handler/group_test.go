package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAndLogin(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()

	resp, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret1",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp, envelope := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	data := dataAsMap(t, envelope)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestGroupLifecycle(t *testing.T) {
	router := newTestRouter()
	aliceToken := registerAndLogin(t, router, "a@x.com", "alice")
	bobToken := registerAndLogin(t, router, "b@x.com", "bob")

	// Create.
	resp, envelope := doJSON(t, router, http.MethodPost, "/api/groups", aliceToken, map[string]string{
		"name":        "Trip to Hanoi",
		"description": "shared expenses",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	group := dataAsMap(t, envelope)
	assert.Equal(t, "Trip to Hanoi", group["name"])
	groupID, ok := group["id"].(float64)
	require.True(t, ok)
	groupPath := fmt.Sprintf("/api/groups/%d", int(groupID))

	// Owner sees it in the list.
	resp, envelope = doJSON(t, router, http.MethodGet, "/api/groups", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	groups, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, groups, 1)

	// A non-member sees an empty list and is forbidden from details.
	resp, envelope = doJSON(t, router, http.MethodGet, "/api/groups", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, envelope.Data)

	resp, _ = doJSON(t, router, http.MethodGet, groupPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Owner gets details with the member roster, passwords stripped.
	resp, envelope = doJSON(t, router, http.MethodGet, groupPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	details := dataAsMap(t, envelope)
	members, ok := details["members"].([]any)
	require.True(t, ok)
	require.Len(t, members, 1)
	member, ok := members[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", member["username"])
	assert.NotContains(t, member, "password")
	assert.NotContains(t, member, "password_hash")

	// Missing group.
	resp, _ = doJSON(t, router, http.MethodGet, "/api/groups/9999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Unauthenticated access never reaches the handlers.
	resp, _ = doJSON(t, router, http.MethodGet, "/api/groups", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateGroupValidation(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router, "a@x.com", "alice")

	resp, envelope := doJSON(t, router, http.MethodPost, "/api/groups", token, map[string]string{
		"description": "no name",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, envelope.Success)
}
