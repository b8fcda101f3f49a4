package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvboost/internal/app"
	"cvboost/internal/model"
	"cvboost/internal/transport/http/response"
)

type AdminHandler struct {
	inbox *app.InboxService
}

type UpdateConsultationRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewAdminHandler(inbox *app.InboxService) *AdminHandler {
	return &AdminHandler{inbox: inbox}
}

func (h *AdminHandler) ListConsultations(c *gin.Context) {
	requests, err := h.inbox.ListConsultations()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list consultations failed")
		return
	}
	response.OK(c, requests)
}

func (h *AdminHandler) UpdateConsultation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid consultation id")
		return
	}

	var req UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	request, err := h.inbox.UpdateConsultationStatus(uint(id), model.ConsultationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrConsultationUnknown):
			response.Error(c, http.StatusNotFound, response.CodeRequestNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update consultation failed")
		}
		return
	}

	response.OK(c, request)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.inbox.Stats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load stats failed")
		return
	}
	response.OK(c, stats)
}
