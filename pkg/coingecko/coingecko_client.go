package coingecko_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseUrl = "https://api.coingecko.com"

type Client struct {
	BaseUrl    string
	HttpClient *http.Client
}

func New(baseUrl string) *Client {
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	return &Client{
		BaseUrl:    baseUrl,
		HttpClient: http.DefaultClient,
	}
}

type SimplePrice struct {
	Usd  float64
	AsOf time.Time
}

// GetSimplePrice fetches the usd spot price for one coingecko asset id
// (e.g. "bitcoin"). CoinGecko's simple/price endpoint has no as-of field,
// so AsOf is the fetch time.
func (c Client) GetSimplePrice(ctx context.Context, id string) (*SimplePrice, error) {
	url := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd", c.BaseUrl, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseBody := map[string]map[string]float64{}
	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse simple price response: %w", err)
	}

	prices, ok := responseBody[id]
	if !ok {
		return nil, fmt.Errorf("no data found for %s", id)
	}
	usd, ok := prices["usd"]
	if !ok {
		return nil, fmt.Errorf("no usd price found for %s", id)
	}

	return &SimplePrice{
		Usd:  usd,
		AsOf: time.Now().UTC(),
	}, nil
}
