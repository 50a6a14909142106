package repository

import (
	"context"
	"fmt"
	"time"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/domain"
	coingecko_client "trackfolio/pkg/coingecko"

	finance_quote "github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// QuoteRepository is the price oracle. Any failure - unknown symbol, vendor
// error, ctx timeout - comes back wrapping domain.ErrPriceUnavailable so the
// projection layer can degrade instead of failing the whole portfolio.
type QuoteRepository interface {
	GetLatestQuote(ctx context.Context, symbol string, assetType model.AssetType) (*domain.Quote, error)
}

type quoteRepositoryHandler struct {
	CoinGeckoClient *coingecko_client.Client
}

func NewQuoteRepository(coinGeckoClient *coingecko_client.Client) QuoteRepository {
	return quoteRepositoryHandler{
		CoinGeckoClient: coinGeckoClient,
	}
}

// coingecko wants its own asset ids, not tickers
var coingeckoIds = map[string]string{
	"BTC-USD": "bitcoin",
	"ETH-USD": "ethereum",
	"ADA-USD": "cardano",
	"SOL-USD": "solana",
}

func CoingeckoID(symbol string) (string, bool) {
	id, ok := coingeckoIds[symbol]
	return id, ok
}

func (h quoteRepositoryHandler) GetLatestQuote(ctx context.Context, symbol string, assetType model.AssetType) (*domain.Quote, error) {
	type result struct {
		quote *domain.Quote
		err   error
	}

	// the vendor clients don't all take a ctx, so run the lookup on the side
	// and let the deadline win
	ch := make(chan result, 1)
	go func() {
		var r result
		if assetType == model.AssetType_Crypto {
			r.quote, r.err = h.getCryptoQuote(ctx, symbol)
		} else {
			r.quote, r.err = h.getYahooQuote(symbol, assetType)
		}
		ch <- r
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: quote lookup for %s: %s", domain.ErrPriceUnavailable, symbol, ctx.Err().Error())
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, r.err.Error())
		}
		return r.quote, nil
	}
}

func (h quoteRepositoryHandler) getYahooQuote(symbol string, assetType model.AssetType) (*domain.Quote, error) {
	q, err := finance_quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote found for %s", symbol)
	}

	return &domain.Quote{
		Symbol:    symbol,
		AssetType: assetType,
		Price:     decimal.NewFromFloat(q.RegularMarketPrice),
		AsOf:      time.Unix(int64(q.RegularMarketTime), 0).UTC(),
		Source:    "yahoo",
	}, nil
}

func (h quoteRepositoryHandler) getCryptoQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	id, ok := CoingeckoID(symbol)
	if !ok {
		return nil, fmt.Errorf("no coingecko id mapping for %s", symbol)
	}

	simplePrice, err := h.CoinGeckoClient.GetSimplePrice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coingecko price for %s: %w", symbol, err)
	}

	return &domain.Quote{
		Symbol:    symbol,
		AssetType: model.AssetType_Crypto,
		Price:     decimal.NewFromFloat(simplePrice.Usd),
		AsOf:      simplePrice.AsOf,
		Source:    "coingecko",
	}, nil
}
