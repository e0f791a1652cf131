package handler

import (
	"net/http"
	"strconv"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivityLogsHandler struct{ svc service.ActivityService }

func NewActivityLogsHandler(svc service.ActivityService) *ActivityLogsHandler {
	return &ActivityLogsHandler{svc: svc}
}

// List returns the audit trail, newest first. All query filters combine
// with AND semantics.
func (h *ActivityLogsHandler) List(c *gin.Context) {
	var filter dto.ActivityLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetros inválidos", err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetros inválidos", err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recent returns the newest entries, for the dashboard feed.
func (h *ActivityLogsHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ForEntity returns the trail of a single entity.
func (h *ActivityLogsHandler) ForEntity(c *gin.Context) {
	resp, err := h.svc.ForEntity(c.Request.Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
