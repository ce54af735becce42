package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"splitmate/internal/app"
	"splitmate/internal/transport/http/middleware"
	"splitmate/internal/transport/http/response"
)

type GroupHandler struct {
	groupService *app.GroupService
	devMode      bool
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

func NewGroupHandler(groupService *app.GroupService, devMode bool) *GroupHandler {
	return &GroupHandler{groupService: groupService, devMode: devMode}
}

func (h *GroupHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), userID, app.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			h.internalError(c, "create group failed", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "group created", group)
}

func (h *GroupHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "list groups failed", err)
		return
	}

	response.Success(c, http.StatusOK, "groups retrieved", groups)
}

func (h *GroupHandler) Details(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token")
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || groupID == 0 {
		response.Error(c, http.StatusBadRequest, "invalid group id")
		return
	}

	details, err := h.groupService.GroupDetails(uint(groupID), userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrGroupNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, app.ErrNotGroupMember):
			response.Error(c, http.StatusForbidden, err.Error())
		default:
			h.internalError(c, "get group details failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "group details retrieved", details)
}

func (h *GroupHandler) internalError(c *gin.Context, message string, err error) {
	if h.devMode {
		response.ErrorDetail(c, http.StatusInternalServerError, message, err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, message)
}
