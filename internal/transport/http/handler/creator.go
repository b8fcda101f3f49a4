package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvboost/internal/app"
	"cvboost/internal/transport/http/response"
	"cvboost/internal/workflow"
)

type CreatorHandler struct {
	creator *app.CreatorService
}

func NewCreatorHandler(creator *app.CreatorService) *CreatorHandler {
	return &CreatorHandler{creator: creator}
}

// Generate renders a CV document built from structured form data.
func (h *CreatorHandler) Generate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var doc workflow.CVDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.creator.Generate(c.Request.Context(), userID, doc)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrGenerateFailed):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate failed")
		}
		return
	}

	response.OK(c, result)
}
