// Package httpapi exposes the JSON API consumed by the web frontend.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/castlebridge/expensetrackr/backend/internal/apperr"
	"github.com/castlebridge/expensetrackr/backend/internal/service"
)

// Handler bundles the services behind the API routes.
type Handler struct {
	Expenses *service.ExpenseService
	Insights *service.InsightService
}

// Register mounts all API routes on the router group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/me", h.Me)
	api.POST("/records", h.AddRecord)
	api.GET("/records", h.ListRecords)
	api.DELETE("/records/:id", h.DeleteRecord)
	api.GET("/records/daily", h.DailyBuckets)
	api.GET("/records/best-worst", h.BestWorst)
	api.GET("/records/totals", h.Totals)
	api.GET("/insights", h.GetInsights)
	api.POST("/insights/ask", h.AskInsight)
}

func (h *Handler) Me(c *gin.Context) {
	owner, err := h.Expenses.Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (h *Handler) AddRecord(c *gin.Context) {
	var input struct {
		Description string `json:"description"`
		Amount      string `json:"amount"`
		Category    string `json:"category"`
		Date        string `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.ErrValidation.Error()})
		return
	}

	record, err := h.Expenses.AddRecord(c.Request.Context(), service.AddRecordInput{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) ListRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	records, err := h.Expenses.ListRecords(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.Expenses.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

func (h *Handler) DailyBuckets(c *gin.Context) {
	buckets, err := h.Expenses.DailyBuckets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

func (h *Handler) BestWorst(c *gin.Context) {
	result, err := h.Expenses.BestWorst(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Totals(c *gin.Context) {
	result, err := h.Expenses.Totals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetInsights always answers 200: the insight pipeline degrades to welcome
// or retry content instead of failing.
func (h *Handler) GetInsights(c *gin.Context) {
	insights := h.Insights.Insights(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// AskInsight always answers 200 with either the generated answer or the
// fixed fallback text.
func (h *Handler) AskInsight(c *gin.Context) {
	var input struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperr.ErrValidation.Error()})
		return
	}

	answer := h.Insights.AnswerQuestion(c.Request.Context(), input.Question)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// respondError maps the error taxonomy to HTTP statuses. Only sentinel text
// reaches the client; backend detail was already logged where it happened.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperr.ErrUnauthenticated.Error()})
	case errors.Is(err, apperr.ErrIdentityIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": apperr.ErrIdentityIncomplete.Error()})
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFoundOrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": apperr.ErrNotFoundOrForbidden.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperr.ErrPersistence.Error()})
	}
}
