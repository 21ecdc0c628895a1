package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rapidjobs_backend/internal/middleware"
	"rapidjobs_backend/internal/services"
)

type RequestHandler struct {
	*BaseHandler
	requestService *services.RequestService
}

func NewRequestHandler(base *BaseHandler, requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{BaseHandler: base, requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("/:jobId/requests", h.RequestJob)
		jobs.GET("/:jobId/requests", h.ListJobRequests)
		jobs.POST("/:jobId/requests/:requestId/approve", h.ApproveRequest)
		jobs.POST("/:jobId/requests/:requestId/reject", h.RejectRequest)
	}

	requests := r.Group("/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", h.ListOwnerRequests)
	}
}

func (h *RequestHandler) RequestJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.RequestJob(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) ListJobRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListJobRequests(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.ApproveRequest(c.Request.Context(), userID, c.Param("jobId"), c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) RejectRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.requestService.RejectRequest(c.Request.Context(), userID, c.Param("jobId"), c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) ListOwnerRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListOwnerRequests(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
