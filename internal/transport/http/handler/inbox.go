package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvboost/internal/app"
	"cvboost/internal/transport/http/response"
)

type InboxHandler struct {
	inbox *app.InboxService
}

type ContactRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ConsultationSubmitRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func NewInboxHandler(inbox *app.InboxService) *InboxHandler {
	return &InboxHandler{inbox: inbox}
}

func (h *InboxHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	submission, err := h.inbox.SubmitContact(c.Request.Context(), app.ContactInput{
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSubmissionEnqueue):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "contact submission failed")
		}
		return
	}

	response.OK(c, gin.H{"id": submission.ID})
}

func (h *InboxHandler) RequestConsultation(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req ConsultationSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	request, err := h.inbox.RequestConsultation(c.Request.Context(), app.ConsultationInput{
		UserID:  userID,
		Email:   getEmailFromContext(c),
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSubmissionEnqueue):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "consultation request failed")
		}
		return
	}

	response.OK(c, gin.H{
		"id":     request.ID,
		"status": request.Status,
	})
}
