package safetycheck

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homesafe/safety-portal-backend/internal/auth"
	"homesafe/safety-portal-backend/internal/export"
)

type Handler struct {
	service *Service
	repo    Repository
	logger  *zap.Logger
}

func NewHandler(service *Service, repo Repository, logger *zap.Logger) *Handler {
	return &Handler{service: service, repo: repo, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/safety-check", h.RunCheck)
	rg.GET("/safety-check/history", h.History)
	rg.GET("/safety-check/history/export", h.ExportHistory)
}

func (h *Handler) RunCheck(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, CheckResponse{Success: false, Error: "not authenticated"})
		return
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, CheckResponse{Success: false, Error: "invalid request body"})
		return
	}

	resp, err := h.service.RunCheck(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInsufficientInput) || errors.Is(err, ErrNoNamesExtracted) {
			c.JSON(http.StatusBadRequest, CheckResponse{Success: false, Error: err.Error()})
			return
		}
		// provider details go to the log, not to the user
		h.logger.Error("safety check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, CheckResponse{Success: false, Error: "safety check failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	checks, err := h.repo.ListChecks(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("failed to list check history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checks": checks, "count": len(checks)})
}

const exportHistoryLimit = 500

func (h *Handler) ExportHistory(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	checks, err := h.repo.ListChecks(c.Request.Context(), userID, exportHistoryLimit, 0)
	if err != nil {
		h.logger.Error("failed to load check history for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	rows := make([]export.HistoryRow, 0, len(checks))
	for _, check := range checks {
		rows = append(rows, export.HistoryRow{
			CheckedAt:    check.CreatedAt,
			Subject:      check.SearchSummary,
			Confidence:   string(check.Confidence),
			TotalResults: check.TotalResults,
			PhotoMatches: check.PhotoMatches,
		})
	}

	filename := fmt.Sprintf("safety-checks-%s", time.Now().Format("2006-01-02"))

	switch c.DefaultQuery("format", "pdf") {
	case "pdf":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
		c.Header("Content-Type", "application/pdf")
		err = export.NewPDFExporter(export.DefaultPDFOptions()).Export(c.Writer, rows)
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Header("Content-Type", "text/csv")
		err = export.NewCSVExporter(export.DefaultCSVOptions()).Export(c.Writer, rows)
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = export.NewExcelExporter(export.DefaultExcelOptions()).Export(c.Writer, rows)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format, use pdf, csv or xlsx"})
		return
	}

	if err != nil {
		h.logger.Error("history export failed", zap.Error(err))
	}
}
