package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvboost/internal/app"
	"cvboost/internal/transport/http/response"
)

type OptimizerHandler struct {
	optimizer *app.OptimizerService
	maxUpload int64
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

func NewOptimizerHandler(optimizer *app.OptimizerService, maxUpload int64) *OptimizerHandler {
	return &OptimizerHandler{optimizer: optimizer, maxUpload: maxUpload}
}

// Upload accepts a multipart PDF and starts a new engagement.
func (h *OptimizerHandler) Upload(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file field")
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, "uploaded file exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unreadable upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unreadable upload")
		return
	}

	snapshot, err := h.optimizer.Upload(
		c.Request.Context(),
		userID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotPDF):
			response.Error(c, http.StatusBadRequest, response.CodeNotPDF, err.Error())
		case errors.Is(err, app.ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, err.Error())
		case errors.Is(err, app.ErrTurnInFlight):
			response.Error(c, http.StatusConflict, response.CodeTurnInFlight, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrParseFailed):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	response.OK(c, snapshot)
}

// Session returns the restored engagement state for the current user.
func (h *OptimizerHandler) Session(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	snapshot, err := h.optimizer.Restore(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "restore failed")
		return
	}
	response.OK(c, snapshot)
}

func (h *OptimizerHandler) Send(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	snapshot, err := h.optimizer.Send(c.Request.Context(), userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMessageEmpty), errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoActiveSession):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrTurnInFlight):
			response.Error(c, http.StatusConflict, response.CodeTurnInFlight, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "send failed")
		}
		return
	}

	response.OK(c, snapshot)
}

func (h *OptimizerHandler) Finalize(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	result, err := h.optimizer.Finalize(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNoActiveSession):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrTurnInFlight):
			response.Error(c, http.StatusConflict, response.CodeTurnInFlight, err.Error())
		case errors.Is(err, app.ErrFinalizeFailed):
			response.Error(c, http.StatusBadGateway, response.CodeUpstreamFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "finalize failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *OptimizerHandler) Reset(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	snapshot, err := h.optimizer.Reset(userID, req.Confirm)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrConfirmRequired), errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrTurnInFlight):
			response.Error(c, http.StatusConflict, response.CodeTurnInFlight, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "reset failed")
		}
		return
	}

	response.OK(c, snapshot)
}

func (h *OptimizerHandler) History(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session_id")
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	history, err := h.optimizer.History(c.Request.Context(), userID, sessionID, limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get history failed")
		}
		return
	}

	response.OK(c, history)
}
