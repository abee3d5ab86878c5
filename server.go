package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickcart/recon_backend/config"
	"github.com/quickcart/recon_backend/models"
	"github.com/quickcart/recon_backend/models/reports"
	"github.com/quickcart/recon_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "8080"

var tracer = otel.Tracer("quickcart-recon")

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until the DB is ready, app endpoints return 503.
	r := gin.New()
	r.Use(gin.Recovery())

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production require an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); outside production allow all.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	r.Use(cors.New(corsConfig))

	r.GET("/reports/reconciliation", func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reports.reconciliation")
		defer span.End()
		ctx = utils.SetRunIdInContext(ctx, uuid.NewString())

		report, err := reports.GetReconciliationReport(ctx)
		if err != nil {
			config.LogError(logger, "server", "reconciliation", "build report", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build reconciliation report"})
			return
		}
		c.JSON(http.StatusOK, report)
	})

	r.GET("/reports/reconciliation/export", func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reports.reconciliation.export")
		defer span.End()
		ctx = utils.SetRunIdInContext(ctx, uuid.NewString())

		report, err := reports.GetReconciliationReport(ctx)
		if err != nil {
			config.LogError(logger, "server", "export", "build report", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build reconciliation report"})
			return
		}
		f, err := reports.BuildReconciliationWorkbook(report)
		if err != nil {
			config.LogError(logger, "server", "export", "build workbook", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render workbook"})
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="reconciliation.xlsx"`)
		if err := f.Write(c.Writer); err != nil {
			config.LogError(logger, "server", "export", "write workbook", nil, err)
		}
	})

	r.GET("/reports/sales-summary", func(c *gin.Context) {
		resp, err := reports.GetSalesSummaryReport(c.Request.Context())
		if err != nil {
			config.LogError(logger, "server", "salesSummary", "query", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sales summary"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/reports/orphan-payments", func(c *gin.Context) {
		resp, err := reports.GetOrphanPaymentsReport(c.Request.Context())
		if err != nil {
			config.LogError(logger, "server", "orphanPayments", "query", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orphan payments"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/reports/settlement-reconciliation", func(c *gin.Context) {
		resp, err := reports.GetSettlementReconciliationReport(c.Request.Context())
		if err != nil {
			config.LogError(logger, "server", "settlementReconciliation", "query", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reconcile settlements"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	r.GET("/reports/daily-discrepancies", func(c *gin.Context) {
		resp, err := reports.GetDailyDiscrepancyReport(c.Request.Context())
		if err != nil {
			config.LogError(logger, "server", "dailyDiscrepancies", "query", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build daily breakdown"})
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow disabling on startup
	// (run it as a separate job instead).
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
