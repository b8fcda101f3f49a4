package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvboost/internal/app"
	"cvboost/internal/transport/http/response"
)

type AnalysisHandler struct {
	analysis *app.AnalysisService
}

type AnalyzeBusinessRequest struct {
	Link string `json:"link" binding:"required"`
}

type CompareBusinessesRequest struct {
	LinkA string `json:"link_a" binding:"required"`
	LinkB string `json:"link_b" binding:"required"`
}

func NewAnalysisHandler(analysis *app.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	report, err := h.analysis.Analyze(c.Request.Context(), req.Link)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAnalysisFailed):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "analysis failed")
		}
		return
	}

	response.OK(c, report)
}

func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req CompareBusinessesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	report, err := h.analysis.Compare(c.Request.Context(), req.LinkA, req.LinkB)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAnalysisFailed):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "comparison failed")
		}
		return
	}

	response.OK(c, report)
}
