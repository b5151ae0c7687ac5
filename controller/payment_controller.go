// api/controller/payment_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/service"
	"github.com/farrowscore/api/util"
)

type PaymentController struct {
	accessService service.IAccessService
}

func NewPaymentController(accessService service.IAccessService) *PaymentController {
	return &PaymentController{
		accessService: accessService,
	}
}

type initiatePaymentRequest struct {
	Feature model.Feature `json:"feature" binding:"required"`
	GameID  string        `json:"game_id"`
}

type verifyPaymentResponse struct {
	ChargeRef string                  `json:"charge_ref"`
	Status    model.TransactionStatus `json:"status"`
}

// RegisterRoutes registers the API routes
func (pc *PaymentController) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("", pc.InitiatePayment)
		payments.GET("/:ref", pc.GetTransaction)
		payments.POST("/:ref/verify", pc.VerifyPayment)
		payments.GET("/:ref/audit", pc.GetAuditTrail)
	}
	r.GET("/access", pc.CheckAccess)
	r.GET("/transactions", pc.ListTransactions)
}

func (pc *PaymentController) respondWithPaymentError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, score_errors.ErrUnknownFeature):
		util.RespondWithError(c, http.StatusBadRequest, "Unknown feature", err)
	case errors.Is(err, score_errors.ErrInvalidPaymentData):
		util.RespondWithError(c, http.StatusBadRequest, "Invalid payment data", err)
	case errors.Is(err, score_errors.ErrTransactionNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Transaction not found", err)
	case errors.Is(err, score_errors.ErrTransactionConflict):
		util.RespondWithError(c, http.StatusConflict, "Transaction conflict", err)
	case errors.Is(err, score_errors.ErrPaymentProvider):
		util.RespondWithError(c, http.StatusBadGateway, "Payment provider unavailable", err)
	case errors.Is(err, score_errors.ErrDatabaseOperation):
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, message, err)
	}
}

func (pc *PaymentController) requireUser(c *gin.Context) (string, bool) {
	userID := util.GetUserIDFromContext(c)
	if userID == "" {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", score_errors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// InitiatePayment endpoint
func (pc *PaymentController) InitiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid payment data", err)
		return
	}
	userID, ok := pc.requireUser(c)
	if !ok {
		return
	}

	intent, err := pc.accessService.Initiate(c.Request.Context(), userID, req.Feature, req.GameID)
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to initiate payment", err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}

func (pc *PaymentController) GetTransaction(c *gin.Context) {
	tx, err := pc.accessService.GetTransaction(c.Request.Context(), c.Param("ref"))
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to retrieve transaction", err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// VerifyPayment endpoint
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	ref := c.Param("ref")
	status, err := pc.accessService.Verify(c.Request.Context(), ref)
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to verify payment", err)
		return
	}
	c.JSON(http.StatusOK, verifyPaymentResponse{ChargeRef: ref, Status: status})
}

func (pc *PaymentController) CheckAccess(c *gin.Context) {
	feature := model.Feature(c.Query("feature"))
	if feature == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Feature is required", score_errors.ErrInvalidRequest)
		return
	}

	grant, err := pc.accessService.CheckAccess(c.Request.Context(), util.GetUserIDFromContext(c), feature, c.Query("gameId"))
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to check access", err)
		return
	}
	c.JSON(http.StatusOK, grant)
}

func (pc *PaymentController) ListTransactions(c *gin.Context) {
	userID, ok := pc.requireUser(c)
	if !ok {
		return
	}

	txs, err := pc.accessService.ListTransactions(c.Request.Context(), userID, model.Feature(c.Query("feature")))
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to list transactions", err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (pc *PaymentController) GetAuditTrail(c *gin.Context) {
	logs, err := pc.accessService.QueryAudit(c.Request.Context(), c.Param("ref"))
	if err != nil {
		pc.respondWithPaymentError(c, "Failed to query audit trail", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
