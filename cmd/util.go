package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"trackfolio/api"
	"trackfolio/internal"
	"trackfolio/internal/logger"
	"trackfolio/internal/repository"
	"trackfolio/internal/service"
	coingecko_client "trackfolio/pkg/coingecko"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	transactionRepository := repository.NewTransactionRepository(dbConn)
	apiRequestRepository := repository.NewApiRequestRepository()
	coinGeckoClient := coingecko_client.New(secrets.CoinGeckoBaseUrl)
	quoteRepository := repository.NewQuoteRepository(coinGeckoClient)

	positionService := service.NewPositionService(transactionRepository, quoteRepository)
	summaryService := service.NewSummaryService(positionService)
	importService := service.NewImportService(dbConn, transactionRepository)

	return &api.ApiHandler{
		Db:                    dbConn,
		PositionService:       positionService,
		SummaryService:        summaryService,
		ImportService:         importService,
		TransactionRepository: transactionRepository,
		ApiRequestRepository:  apiRequestRepository,
		JwtSecret:             secrets.JwtSecret,
		Logger:                logger.New(),
	}, nil
}
