package api

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/logger"
	"trackfolio/internal/repository"
	"trackfolio/internal/service"
	"trackfolio/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db                    *sql.DB
	PositionService       service.PositionService
	SummaryService        service.SummaryService
	ImportService         service.ImportService
	TransactionRepository repository.TransactionRepository
	ApiRequestRepository  repository.ApiRequestRepository
	JwtSecret             string
	Logger                *zap.SugaredLogger
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.loggerMiddleware)
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to trackfolio"})
	})

	authorized := router.Group("/", m.authMiddleware())
	authorized.GET("/portfolios/:id/positions", m.getPositions)
	authorized.GET("/portfolios/:id/positions/:symbol", m.getPosition)
	authorized.GET("/portfolios/:id/closedPositions", m.getClosedPositions)
	authorized.GET("/portfolios/:id/summary", m.getPortfolioSummary)
	authorized.POST("/portfolios/:id/transactions", m.addTransaction)
	authorized.POST("/portfolios/:id/transactions/import", m.importTransactions)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) loggerMiddleware(ctx *gin.Context) {
	reqCtx := context.WithValue(ctx.Request.Context(), logger.ContextKey, m.Logger)
	ctx.Request = ctx.Request.WithContext(reqCtx)
	ctx.Next()
}

// logRequestMiddleware logs every request and persists it to the api_request
// audit table. Audit writes never fail the request.
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	start := time.Now().UTC()

	var audit *model.APIRequest
	if m.ApiRequestRepository != nil {
		req, err := m.ApiRequestRepository.Add(m.Db, model.APIRequest{
			IPAddress: util.StringPointer(ctx.ClientIP()),
			Method:    ctx.Request.Method,
			Route:     ctx.Request.URL.Path,
			StartTs:   start,
		})
		if err != nil {
			m.Logger.Warnf("failed to record api request: %s", err.Error())
		}
		audit = req
	}

	ctx.Next()

	durationMs := time.Since(start).Milliseconds()
	m.Logger.Infow("request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", durationMs,
		"ip", ctx.ClientIP(),
	)

	if audit != nil {
		status := int32(ctx.Writer.Status())
		audit.StatusCode = &status
		audit.DurationMs = &durationMs
		err := m.ApiRequestRepository.Update(m.Db, *audit)
		if err != nil {
			m.Logger.Warnf("failed to update api request: %s", err.Error())
		}
	}
}
