package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"splitmate/internal/app"
	"splitmate/internal/transport/http/middleware"
	"splitmate/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	activities, err := h.activityService.ListRecent(userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list activities failed")
		return
	}

	response.Success(c, http.StatusOK, "activities retrieved", activities)
}
