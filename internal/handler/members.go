package handler

import (
	"net/http"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/audit"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/middleware"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type MembersHandler struct{ svc service.MemberService }

func NewMembersHandler(svc service.MemberService) *MembersHandler {
	return &MembersHandler{svc: svc}
}

func (h *MembersHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MembersHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated list filtered by name and status.
func (h *MembersHandler) List(c *gin.Context) {
	var filter dto.MemberFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
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

func (h *MembersHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}
	old, _ := h.svc.Get(c.Request.Context(), id)
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set(middleware.AuditDetailsKey, audit.Diff{Old: old, New: resp})
	c.JSON(http.StatusOK, resp)
}

func (h *MembersHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
