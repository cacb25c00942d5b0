package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/config"
	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/logger"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/service"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

// NewHandler wires the HTTP surface over the transform service.
func NewHandler(svc service.TransformService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeImage(svc, cfg))
	r.POST("/encrypt", transformImage(svc, cfg, false))
	r.POST("/decrypt", transformImage(svc, cfg, true))
	r.POST("/batch", batchTransform(svc, cfg))
	r.GET("/history", listHistory(svc))
	r.DELETE("/history", clearHistory(svc))
	r.GET("/report/:id", operationReport(svc))

	return r
}

func analyzeImage(svc service.TransformService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.Analyze(ctx, req.URL, req.BaseKey)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":        req.URL,
			"entropy":    resp.Analysis.Entropy,
			"complexity": resp.Analysis.Complexity,
			"method":     resp.RecommendedMethod,
		}).Info("Image analysis completed")

		c.JSON(http.StatusOK, resp)
	}
}

func transformImage(svc service.TransformService, cfg *config.Config, decrypt bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.TransformRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.Transform(ctx, req.URL, req.Key, req.Method, decrypt)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "transform failed", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func batchTransform(svc service.TransformService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Batches get the transform timeout per the whole run; individual
		// fetches are still bounded by the fetcher's own timeout.
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.TransformTimeout)
		defer cancel()

		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		resp, err := svc.Batch(ctx, req)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "batch failed", err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func listHistory(svc service.TransformService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.History(c.Request.Context())
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to list history", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"operations": entries})
	}
}

func clearHistory(svc service.TransformService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearHistory(c.Request.Context()); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to clear history", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func operationReport(svc service.TransformService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.Report(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to build report", err)
			return
		}

		if c.Query("format") == "text" {
			c.String(http.StatusOK, report.Render())
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
