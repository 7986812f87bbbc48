package models

import "time"

// Sentiment classification of a news text.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Recommendation actions. The string values are part of the persisted schema
// read by the frontend and must not change.
const (
	ActionStrongBuy   = "STRONG_BUY"
	ActionBuy         = "BUY"
	ActionNeutral     = "NEUTRAL"
	ActionAvoid       = "AVOID"
	ActionStrongAvoid = "STRONG_AVOID"
)

// Market status values.
const (
	MarketOpen     = "OPEN"
	MarketClosed   = "CLOSED"
	MarketActive   = "ACTIVE"
	MarketInactive = "INACTIVE"
)

// NewsItem is one normalized, sentiment-tagged feed entry. Immutable once
// created by the aggregator.
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	Source    string    `json:"source"`
	Category  string    `json:"category"`
	Sentiment string    `json:"sentiment"`
	Relevance int       `json:"relevance"`
}

// ExchangeRate is one quoted currency against UAH.
type ExchangeRate struct {
	Rate float64 `json:"rate"`
	Date string  `json:"date"`
	Name string  `json:"name"`
}

// CryptoPrice quotes one coin in USD and EUR.
type CryptoPrice struct {
	USD     float64 `json:"USD"`
	EUR     float64 `json:"EUR"`
	Updated string  `json:"updated"`
}

// CommodityPrice quotes one commodity.
type CommodityPrice struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"`
	Change   string  `json:"change"`
}

// IndicatorSet groups the per-category indicator data.
type IndicatorSet struct {
	ExchangeRates map[string]ExchangeRate   `json:"exchange_rates"`
	InterestRates map[string]float64        `json:"interest_rates"`
	Crypto        map[string]CryptoPrice    `json:"crypto"`
	Commodities   map[string]CommodityPrice `json:"commodities"`
}

// MarketState is the open/closed flag of one market plus its next transition.
type MarketState struct {
	Status     string `json:"status"`
	NextChange string `json:"next_change"`
}

// MarketStatus maps market name to state plus the aggregate flag.
type MarketStatus struct {
	Markets map[string]MarketState `json:"markets"`
	Overall string                 `json:"overall"`
}

// IndicatorSnapshot is the result of one indicator collection cycle. A failed
// category shows up as an empty map plus a warning, never as an error.
type IndicatorSnapshot struct {
	Timestamp    string            `json:"timestamp"`
	Indicators   IndicatorSet      `json:"indicators"`
	MarketStatus MarketStatus      `json:"market_status"`
	Sources      map[string]string `json:"sources"`
	Warnings     []string          `json:"warnings"`
}

// KeyEvent is a news excerpt retained as impact evidence.
type KeyEvent struct {
	Title     string `json:"title"`
	Sentiment string `json:"sentiment"`
}

// CurrencyImpact aggregates sentiment-tagged news mentions of one asset.
// SentimentScore is ((positive-negative)/total+1)/2 in [0,1]; 0.5 is the
// neutral prior when no news matched (indistinguishable from an exactly
// balanced batch; upstream does not disambiguate either).
type CurrencyImpact struct {
	Asset          string     `json:"asset"`
	PositiveNews   int        `json:"positive_news"`
	NegativeNews   int        `json:"negative_news"`
	NeutralNews    int        `json:"neutral_news"`
	TotalNews      int        `json:"total_news"`
	SentimentScore float64    `json:"sentiment_score"`
	KeyEvents      []KeyEvent `json:"key_events"`
}

// Recommendation is one actionable call on one asset.
type Recommendation struct {
	ID          string  `json:"id"`
	Asset       string  `json:"asset"`
	Action      string  `json:"action"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	Timeframe   string  `json:"timeframe"`
	RiskLevel   string  `json:"risk_level"`
	GeneratedAt string  `json:"generated_at"`
}

// MarketOverview summarizes the run for the frontend header widgets.
type MarketOverview struct {
	Summary          string   `json:"summary,omitempty"`
	OverallSentiment string   `json:"overall_sentiment"`
	BestCurrency     string   `json:"best_currency"`
	WorstCurrency    string   `json:"worst_currency"`
	BuyCount         int      `json:"buy_count"`
	AvoidCount       int      `json:"avoid_count"`
	KeyRisks         []string `json:"key_risks,omitempty"`
	GeneralAdvice    string   `json:"general_advice,omitempty"`
}

// AnalysisResult is the persisted unit of one analysis cycle. Field names
// follow what the frontend reads from recommendations.json.
type AnalysisResult struct {
	AnalysisID           string                    `json:"analysis_id"`
	LastUpdate           string                    `json:"last_update"`
	LastUpdateDisplay    string                    `json:"last_update_display"`
	Timezone             string                    `json:"timezone"`
	Language             string                    `json:"language"`
	Recommendations      []Recommendation          `json:"recommendations"`
	MarketOverview       MarketOverview            `json:"market_overview"`
	TotalRecommendations int                       `json:"total_recommendations"`
	NewsCount            int                       `json:"news_count"`
	Impact               map[string]CurrencyImpact `json:"impact"`
	NextAnalysis         string                    `json:"next_analysis"`
}

// HistoryEntry is the condensed per-run record kept in the rolling log.
type HistoryEntry struct {
	Timestamp            string           `json:"timestamp"`
	AnalysisID           string           `json:"analysis_id"`
	RecommendationsCount int              `json:"recommendations_count"`
	MarketOverview       MarketOverview   `json:"market_overview"`
	TopRecommendations   []Recommendation `json:"top_recommendations"`
}

// AssetCount pairs an asset with how often it was recommended.
type AssetCount struct {
	Asset string `json:"asset"`
	Count int    `json:"count"`
}

// Statistics is a 30-day roll-up over the history log.
type Statistics struct {
	TotalAnalyses      int          `json:"total_analyses"`
	LastAnalysis       string       `json:"last_analysis"`
	AvgRecommendations float64      `json:"avg_recommendations"`
	MostRecommended    []AssetCount `json:"most_recommended"`
}

// AIRecommendation is one entry of the completion-service response, before
// validation.
type AIRecommendation struct {
	Asset      string  `json:"asset"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Timeframe  string  `json:"timeframe"`
	RiskLevel  string  `json:"risk_level"`
}

// AIAnalysis is the JSON shape the completion service is asked to return.
type AIAnalysis struct {
	MarketOverview   string             `json:"market_overview"`
	OverallSentiment string             `json:"overall_sentiment"`
	Recommendations  []AIRecommendation `json:"recommendations"`
	KeyRisks         []string           `json:"key_risks"`
	GeneralAdvice    string             `json:"general_advice"`
}

// HealthResponse is returned by /api/v1/health.
type HealthResponse struct {
	Ok          bool            `json:"ok"`
	TsISO       string          `json:"tsISO"`
	Service     string          `json:"service"`
	DataMissing []string        `json:"data_missing"`
	Env         map[string]bool `json:"env"`
}
