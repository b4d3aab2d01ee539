package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/TheBeardNerd/SmartCart-sub002/catalog"
	"github.com/TheBeardNerd/SmartCart-sub002/config"
	"github.com/TheBeardNerd/SmartCart-sub002/models"
	"github.com/TheBeardNerd/SmartCart-sub002/optimizer"
	"github.com/TheBeardNerd/SmartCart-sub002/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultPort = "8080"

// optimizer-service is the thin JSON boundary in front of the engine. The
// engine itself owns no wire surface; everything here is binding, error
// mapping and headers.
func main() {
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	if config.CandidateCacheEnabled() {
		config.ConnectRedisWithRetry()
	}

	cfg := config.LoadOptimizerConfig()
	fetcher := catalog.NewFetcher(
		[]catalog.Source{catalog.NewStoreCatalog(config.GetDB())},
		cfg.PerStoreTimeout,
		logger,
	)
	var cache *optimizer.CandidateCache
	if config.CandidateCacheEnabled() {
		cache = optimizer.NewCandidateCache(cfg.CandidateCacheTTL)
	}
	engine := optimizer.NewEngine(cfg, logger, fetcher, cache)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Correlation-Id"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/optimize", func(c *gin.Context) {
		var req models.OptimizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		correlationId := c.GetHeader("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		if storeId := c.GetHeader("X-Default-Store"); storeId != "" {
			ctx = utils.SetDefaultStoreIdInContext(ctx, storeId)
		}

		result, err := engine.Optimize(ctx, &req)
		if err != nil {
			status := http.StatusBadRequest
			message := err.Error()

			var violation *models.InvariantViolationError
			switch {
			case errors.Is(err, models.ErrCatalogUnavailable):
				status = http.StatusServiceUnavailable
			case errors.Is(err, models.ErrOptimizationTimeout):
				status = http.StatusGatewayTimeout
			case errors.As(err, &violation):
				// internal defect, already logged with its snapshot
				status = http.StatusInternalServerError
				message = "optimization failed"
			}
			c.JSON(status, gin.H{"error": message, "correlationId": correlationId})
			return
		}
		c.JSON(http.StatusOK, result)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		config.LogError(logger, "main.go", "main", "router.Run", port, err)
		os.Exit(1)
	}
}
