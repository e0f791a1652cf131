package handler

import (
	"net/http"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/middleware"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventsHandler struct{ svc service.EventService }

func NewEventsHandler(svc service.EventService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
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

func (h *EventsHandler) Get(c *gin.Context) {
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

func (h *EventsHandler) List(c *gin.Context) {
	var filter dto.EventFilter
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

func (h *EventsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventsHandler) Delete(c *gin.Context) {
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

// ── Participants ─────────────────────────────────────────────────────────────

// RegisterParticipant adds a member to the event. Registering twice yields 409.
func (h *EventsHandler) RegisterParticipant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RegisterParticipantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.Set(middleware.AuditEntityKey, "EVENT_PARTICIPANT")
	resp, err := h.svc.RegisterParticipant(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EventsHandler) ListParticipants(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListParticipants(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventsHandler) RemoveParticipant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido", ""))
		return
	}
	c.Set(middleware.AuditEntityKey, "EVENT_PARTICIPANT")
	if err := h.svc.RemoveParticipant(c.Request.Context(), id, memberID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
