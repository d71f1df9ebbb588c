package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markpedia/mpos_backend/internal/apperrors"
	"github.com/markpedia/mpos_backend/internal/core/domain"
	portssvc "github.com/markpedia/mpos_backend/internal/core/ports/services"
	"github.com/markpedia/mpos_backend/internal/dto"
	"github.com/markpedia/mpos_backend/internal/middleware"
	"github.com/markpedia/mpos_backend/internal/utils/pagination"
)

// cashRequestHandler handles HTTP requests related to cash requests.
type cashRequestHandler struct {
	cashRequestService portssvc.CashRequestSvcFacade
}

// newCashRequestHandler creates a new cashRequestHandler.
func newCashRequestHandler(crs portssvc.CashRequestSvcFacade) *cashRequestHandler {
	return &cashRequestHandler{
		cashRequestService: crs,
	}
}

// RegisterCashRequestRoutes registers routes related to cash requests.
func RegisterCashRequestRoutes(rg *gin.RouterGroup, cashRequestService portssvc.CashRequestSvcFacade) {
	h := newCashRequestHandler(cashRequestService)

	requests := rg.Group("/cash-requests")
	{
		requests.POST("", h.createCashRequest)
		requests.GET("", h.listCashRequests)
		requests.GET("/:id", h.getCashRequest)
		requests.GET("/:id/approval-chain", h.getApprovalChain)
		requests.POST("/:id/approve", h.approveCashRequest)
		requests.POST("/:id/reject", h.rejectCashRequest)
		requests.POST("/:id/disburse", h.disburseCashRequest)
		requests.POST("/:id/documents", h.attachDocument)
	}
}

// respondWithWorkflowError maps service errors to HTTP responses.
func respondWithWorkflowError(c *gin.Context, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cash request not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": "The request was modified by someone else, please reload and retry"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Cash request operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createCashRequest godoc
// @Summary Raise a new cash request
// @Description Creates a cash request that enters the approval chain at the accountant stage
// @Tags cash-requests
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateCashRequestRequest true "Cash request details"
// @Success 201 {object} dto.CashRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create cash request"
// @Security BearerAuth
// @Router /cash-requests [post]
func (h *cashRequestHandler) createCashRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCashRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	newRequest, err := h.cashRequestService.CreateCashRequest(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	logger.Info("Cash request created", slog.String("request_id", newRequest.RequestID), slog.String("reference", newRequest.Reference))
	c.JSON(http.StatusCreated, dto.ToCashRequestResponse(newRequest))
}

// getCashRequest godoc
// @Summary Get a cash request by ID
// @Description Retrieves a cash request with its audit trail and supporting documents
// @Tags cash-requests
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Success 200 {object} dto.CashRequestResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (not owner and not a finance role)"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Security BearerAuth
// @Router /cash-requests/{id} [get]
func (h *cashRequestHandler) getCashRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.cashRequestService.GetCashRequest(c.Request.Context(), requestID, actorUserID)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRequestResponse(request))
}

// listCashRequests godoc
// @Summary List cash requests
// @Description Lists cash requests visible to the caller, newest first. Finance roles see all requests, other users only their own.
// @Tags cash-requests
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   departmentID query string false "Filter by department"
// @Param   requestedBy query string false "Filter by requesting user"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Opaque cursor from a previous page"
// @Success 200 {object} dto.ListCashRequestsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /cash-requests [get]
func (h *cashRequestHandler) listCashRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListCashRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.cashRequestService.ListCashRequests(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	nextToken := ""
	if req.Limit > 0 && len(requests) == req.Limit {
		nextToken = pagination.EncodeDateBasedToken(requests[len(requests)-1].CreatedAt)
	}

	c.JSON(http.StatusOK, dto.ToListCashRequestsResponse(requests, nextToken))
}

// getApprovalChain godoc
// @Summary Get the approval chain of a cash request
// @Description Returns the ordered approval steps with each step's progress state
// @Tags cash-requests
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Success 200 {object} dto.ApprovalChainResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Security BearerAuth
// @Router /cash-requests/{id}/approval-chain [get]
func (h *cashRequestHandler) getApprovalChain(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	steps, err := h.cashRequestService.ResolveApprovalChain(c.Request.Context(), requestID, actorUserID)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalChainResponse(requestID, steps))
}

func (h *cashRequestHandler) transition(c *gin.Context, action domain.WorkflowAction) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("request_id", requestID),
		slog.String("action", string(action)),
	)

	request, err := h.cashRequestService.Transition(c.Request.Context(), requestID, action, actorUserID, req.Notes)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	logger.Info("Cash request transitioned", slog.String("new_status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToCashRequestResponse(request))
}

// approveCashRequest godoc
// @Summary Approve a cash request
// @Description Advances the request one step along its approval chain. Only the role owning the current stage may approve.
// @Tags cash-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Param   body body dto.TransitionRequest false "Optional notes"
// @Success 200 {object} dto.CashRequestResponse
// @Failure 403 {object} map[string]string "Forbidden (wrong role for current stage)"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Request not in an approvable state"
// @Security BearerAuth
// @Router /cash-requests/{id}/approve [post]
func (h *cashRequestHandler) approveCashRequest(c *gin.Context) {
	h.transition(c, domain.ActionApprove)
}

// rejectCashRequest godoc
// @Summary Reject a cash request
// @Description Declines the request from any non-terminal stage. Only the role owning the current stage may reject.
// @Tags cash-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Param   body body dto.TransitionRequest false "Optional notes (reason for rejection)"
// @Success 200 {object} dto.CashRequestResponse
// @Failure 403 {object} map[string]string "Forbidden (wrong role for current stage)"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Request not in a rejectable state"
// @Security BearerAuth
// @Router /cash-requests/{id}/reject [post]
func (h *cashRequestHandler) rejectCashRequest(c *gin.Context) {
	h.transition(c, domain.ActionReject)
}

// disburseCashRequest godoc
// @Summary Mark a cash request as paid
// @Description Records the disbursement of an approved request. Cashier only.
// @Tags cash-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Param   body body dto.TransitionRequest false "Optional notes"
// @Success 200 {object} dto.CashRequestResponse
// @Failure 403 {object} map[string]string "Forbidden (cashier role required)"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Request not approved yet"
// @Security BearerAuth
// @Router /cash-requests/{id}/disburse [post]
func (h *cashRequestHandler) disburseCashRequest(c *gin.Context) {
	h.transition(c, domain.ActionDisburse)
}

// attachDocument godoc
// @Summary Attach a supporting document
// @Description References an uploaded document (invoice, quotation, receipt) from a cash request
// @Tags cash-requests
// @Accept  json
// @Produce  json
// @Param   id path string true "Cash Request ID"
// @Param   document body dto.AttachDocumentRequest true "Document reference"
// @Success 201 {object} dto.DocumentRefResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cash request not found"
// @Failure 422 {object} map[string]string "Request already finalized"
// @Security BearerAuth
// @Router /cash-requests/{id}/documents [post]
func (h *cashRequestHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.cashRequestService.AttachDocument(c.Request.Context(), requestID, req, actorUserID)
	if err != nil {
		respondWithWorkflowError(c, err, logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentRefResponse(doc))
}
