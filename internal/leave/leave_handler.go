package leave

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/theesh-25755/HR-mobile-app/internal/middleware"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/apperror"
	"github.com/theesh-25755/HR-mobile-app/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	h := NewHandler(service)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotencyLock drops the in-flight lock and, when a response is
// given, caches the status plus the exact envelope so a replay of the
// same Idempotency-Key repeats the original response verbatim.
func (h *Handler) releaseIdempotencyLock(c *gin.Context, status int, resp any) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString("idempotency_lock_key"); lk != "" {
		_ = h.rdb.Del(c.Request.Context(), lk).Err()
	}
	if resp == nil {
		return
	}
	ck := c.GetString("idempotency_cache_key")
	if ck == "" {
		return
	}
	body, err := json.Marshal(response.ApiEnvelope{Ok: true, Data: resp})
	if err != nil {
		return
	}
	payload, err := json.Marshal(middleware.CachedResponse{Status: status, Body: body})
	if err != nil {
		return
	}
	_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
}

func (h *Handler) Submit(c *gin.Context) {
	email := c.GetString("email")
	name := c.GetString("name")
	role := c.GetString("role")
	h.logger.Debug("http submit leave", zap.String("requester", email), zap.String("role", role))

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c, 0, nil)
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, "VALIDATION_ERROR", mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), Requester{Email: email, Name: name, Role: role}, req)
	if err != nil {
		h.releaseIdempotencyLock(c, 0, nil)
		h.writeServiceError(c, err)
		return
	}

	h.releaseIdempotencyLock(c, http.StatusCreated, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Pending(c *gin.Context) {
	ctx := c.Request.Context()
	role := c.GetString("role")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	resp, total, err := h.service.PendingFor(ctx, role, page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Act(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	email := c.GetString("email")
	name := c.GetString("name")
	role := c.GetString("role")

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c, 0, nil)
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Act(ctx, id, email, name, role, req)
	if err != nil {
		h.releaseIdempotencyLock(c, 0, nil)
		h.writeServiceError(c, err)
		return
	}

	h.releaseIdempotencyLock(c, http.StatusOK, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Mine(c *gin.Context) {
	ctx := c.Request.Context()
	email := c.GetString("email")

	resp, err := h.service.Mine(ctx, email)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
