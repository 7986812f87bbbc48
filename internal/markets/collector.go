package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"currency-advisor/backend-go/internal/cache"
	"currency-advisor/backend-go/internal/config"
	"currency-advisor/backend-go/internal/models"
)

// Per-category cache lifetimes. Crypto moves fast, central-bank rates do not.
const (
	ttlExchangeRates = time.Hour
	ttlInterestRates = 24 * time.Hour
	ttlCrypto        = 5 * time.Minute
	ttlCommodities   = time.Hour
)

const (
	defaultNBUExchangeURL   = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?json"
	defaultCryptoCompareURL = "https://min-api.cryptocompare.com/data/pricemulti"
)

var exchangeCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CHF", "PLN"}

// Collector gathers the economic indicator categories concurrently. Every
// category degrades to an empty value plus a warning on failure; Collect
// itself never fails.
type Collector struct {
	hc               *http.Client
	cache            cache.Cache
	nbuExchangeURL   string
	cryptoCompareURL string
	now              func() time.Time
}

func NewCollector(cfg config.Config, c cache.Cache) *Collector {
	return &Collector{
		hc:               &http.Client{Timeout: cfg.FetchTimeout},
		cache:            c,
		nbuExchangeURL:   defaultNBUExchangeURL,
		cryptoCompareURL: defaultCryptoCompareURL,
		now:              config.KyivNow,
	}
}

// Collect returns a snapshot of all indicator categories. Each category runs
// as its own task; a cache check precedes every network call.
func (c *Collector) Collect(ctx context.Context) models.IndicatorSnapshot {
	log.Printf("markets: collecting indicators")

	snapshot := models.IndicatorSnapshot{
		Timestamp: c.now().Format(time.RFC3339),
		Sources: map[string]string{
			"exchange_rates": "НБУ",
			"interest_rates": "Статичні дані",
			"crypto":         "CryptoCompare",
			"commodities":    "Різні джерела",
			"market_status":  "Розрахунковий",
		},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	warn := func(msg string) {
		mu.Lock()
		snapshot.Warnings = append(snapshot.Warnings, msg)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		rates, err := cache.GetOrFetch(ctx, c.cache, "indicators:exchange_rates", ttlExchangeRates, c.fetchExchangeRates)
		if err != nil {
			log.Printf("markets: exchange rates failed: %v", err)
		}
		if len(rates) == 0 {
			warn("Відсутні дані про курси валют")
			rates = map[string]models.ExchangeRate{}
		}
		snapshot.Indicators.ExchangeRates = rates
	}()
	go func() {
		defer wg.Done()
		rates, err := cache.GetOrFetch(ctx, c.cache, "indicators:interest_rates", ttlInterestRates, c.fetchInterestRates)
		if err != nil || len(rates) == 0 {
			warn("Відсутні дані про відсоткові ставки")
			rates = map[string]float64{}
		}
		snapshot.Indicators.InterestRates = rates
	}()
	go func() {
		defer wg.Done()
		prices, err := cache.GetOrFetch(ctx, c.cache, "indicators:crypto", ttlCrypto, c.fetchCryptoPrices)
		if err != nil {
			log.Printf("markets: crypto prices failed: %v", err)
		}
		if len(prices) == 0 {
			warn("Відсутні дані про криптовалюти")
			prices = map[string]models.CryptoPrice{}
		}
		snapshot.Indicators.Crypto = prices
	}()
	go func() {
		defer wg.Done()
		prices, err := cache.GetOrFetch(ctx, c.cache, "indicators:commodities", ttlCommodities, c.fetchCommodityPrices)
		if err != nil || len(prices) == 0 {
			warn("Відсутні дані про товарні ринки")
			prices = map[string]models.CommodityPrice{}
		}
		snapshot.Indicators.Commodities = prices
	}()
	wg.Wait()

	snapshot.MarketStatus = StatusAt(c.now())
	if snapshot.Warnings == nil {
		snapshot.Warnings = []string{}
	}
	log.Printf("markets: snapshot ready, %d warnings", len(snapshot.Warnings))
	return snapshot
}

type nbuRate struct {
	CC           string  `json:"cc"`
	Rate         float64 `json:"rate"`
	ExchangeDate string  `json:"exchangedate"`
	Txt          string  `json:"txt"`
}

func (c *Collector) fetchExchangeRates(ctx context.Context) (map[string]models.ExchangeRate, error) {
	var payload []nbuRate
	if err := c.getJSON(ctx, c.nbuExchangeURL, &payload); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(exchangeCurrencies))
	for _, cc := range exchangeCurrencies {
		wanted[cc] = true
	}

	rates := make(map[string]models.ExchangeRate)
	for _, item := range payload {
		if wanted[item.CC] {
			rates[item.CC] = models.ExchangeRate{
				Rate: item.Rate,
				Date: item.ExchangeDate,
				Name: item.Txt,
			}
		}
	}
	rates["UAH"] = models.ExchangeRate{
		Rate: 1.0,
		Date: c.now().Format("02.01.2006"),
		Name: "Українська гривня",
	}
	return rates, nil
}

// Central-bank policy rates change a handful of times a year; the seed values
// stand in until a rates API is wired up.
func (c *Collector) fetchInterestRates(ctx context.Context) (map[string]float64, error) {
	return map[string]float64{
		"ФРС США":     5.25,
		"ЄЦБ":         4.0,
		"Банк Англії": 5.25,
		"НБУ":         15.0,
		"Банк Японії": -0.1,
		"ШНБ":         1.75,
	}, nil
}

func (c *Collector) fetchCryptoPrices(ctx context.Context) (map[string]models.CryptoPrice, error) {
	url := fmt.Sprintf("%s?fsyms=%s&tsyms=USD,EUR", c.cryptoCompareURL, strings.Join(config.Crypto, ","))
	var payload map[string]map[string]float64
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	updated := c.now().Format(time.RFC3339)
	prices := make(map[string]models.CryptoPrice)
	for _, coin := range config.Crypto {
		quote, ok := payload[coin]
		if !ok {
			continue
		}
		prices[coin] = models.CryptoPrice{
			USD:     quote["USD"],
			EUR:     quote["EUR"],
			Updated: updated,
		}
	}
	return prices, nil
}

func (c *Collector) fetchCommodityPrices(ctx context.Context) (map[string]models.CommodityPrice, error) {
	return map[string]models.CommodityPrice{
		"GOLD":        {Price: 1950.50, Currency: "USD", Unit: "за тройську унцію", Change: "+0.5%"},
		"OIL_BRENT":   {Price: 82.30, Currency: "USD", Unit: "за барель", Change: "-0.3%"},
		"SILVER":      {Price: 23.15, Currency: "USD", Unit: "за тройську унцію", Change: "+0.2%"},
		"NATURAL_GAS": {Price: 2.85, Currency: "USD", Unit: "за млн BTU", Change: "-1.1%"},
	}, nil
}

func (c *Collector) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("indicator api: %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
