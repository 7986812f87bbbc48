package advisor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"currency-advisor/backend-go/internal/models"
)

const maxPromptNews = 10

func systemPrompt(language string) string {
	if language == "ru" {
		return `Ты опытный финансовый аналитик. Твои рекомендации должны быть:
1. Основаны на фактах из новостей
2. Консервативны и взвешены
3. Содержат конкретные причины
4. Учитывают риски
5. Практичны и полезны для инвесторов`
	}
	return `Ти досвідчений фінансовий аналітик. Твої рекомендації мають бути:
1. Засновані на фактах з новин
2. Консервативні та зважені
3. Містити конкретні причини
4. Враховувати ризики
5. Практичні та корисні для інвесторів`
}

// buildPrompt renders the bounded user prompt: the top news by relevance,
// a condensed indicator digest, and the fixed JSON schema the model must
// fill in.
func buildPrompt(news []models.NewsItem, snapshot models.IndicatorSnapshot, language string, now time.Time) string {
	newsSummary := summarizeNews(news)
	economicSummary := summarizeIndicators(snapshot)

	if language == "ru" {
		return fmt.Sprintf(`Ты - финансовый аналитик с 20-летним опытом. Твоя задача - дать инвестиционные рекомендации на основе новостей и экономических данных.

Дата анализа: %s (Киевское время)

ПОСЛЕДНИЕ НОВОСТИ (отсортированы по важности):
%s

ЭКОНОМИЧЕСКИЕ ПОКАЗАТЕЛИ:
%s

Проанализируй и дай рекомендации по следующим активам:
- Основные валюты: USD, EUR, GBP, JPY, CHF, UAH
- Криптовалюты: BTC, ETH
- Товары: GOLD (золото)

ФОРМАТ ОТВЕТА (JSON):
%s

ТРЕБОВАНИЯ:
1. Минимум 3 рекомендации, максимум 8
2. Confidence (уверенность) должна быть от 0.6 до 0.95
3. Объяснения должны быть конкретными и основанными на новостях
4. Не рекомендуй активы, если нет достаточных данных
5. Будь консервативным, избегай излишне рискованных рекомендаций`,
			now.Format("2006-01-02 15:04"), newsSummary, economicSummary, responseSchema)
	}

	return fmt.Sprintf(`Ти - фінансовий аналітик з досвідом 20 років. Твоя задача - дати інвестиційні рекомендації на основі новин та економічних даних.

Дата аналізу: %s (Київський час)

ОСТАННІ НОВИНИ (впорядковано за важливістю):
%s

ЕКОНОМІЧНІ ПОКАЗНИКИ:
%s

Аналізуй та дай рекомендації щодо наступних активів:
- Основні валюти: USD, EUR, GBP, JPY, CHF, UAH
- Криптовалюти: BTC, ETH
- Товари: GOLD (золото)

ФОРМАТ ВІДПОВІДІ (JSON):
%s

ВИМОГИ:
1. Мінімум 3 рекомендації, максимум 8
2. Confidence (впевненість) має бути від 0.6 до 0.95
3. Пояснення мають бути конкретними та ґрунтуватися на новинах
4. Не рекомендуй активи, якщо немає достатніх даних
5. Будь консервативним, уникай надмірно ризикованих рекомендацій`,
		now.Format("2006-01-02 15:04"), newsSummary, economicSummary, responseSchema)
}

const responseSchema = `{
  "market_overview": "Короткий огляд ринкової ситуації (2-3 речення)",
  "overall_sentiment": "positive/neutral/negative",
  "recommendations": [
    {
      "asset": "EUR",
      "action": "STRONG_BUY/BUY/NEUTRAL/AVOID/STRONG_AVOID",
      "confidence": 0.85,
      "reason": "Детальне пояснення (2-3 речення)",
      "timeframe": "Найближчий час/1-3 дні/тиждень",
      "risk_level": "low/medium/high"
    }
  ],
  "key_risks": ["Основний ризик 1", "Основний ризик 2"],
  "general_advice": "Загальна порада інвесторам"
}`

func summarizeNews(news []models.NewsItem) string {
	top := make([]models.NewsItem, len(news))
	copy(top, news)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Relevance > top[j].Relevance
	})
	if len(top) > maxPromptNews {
		top = top[:maxPromptNews]
	}

	lines := make([]string, 0, len(top))
	for i, item := range top {
		lines = append(lines, fmt.Sprintf("%d. %s %s (%s)", i+1, sentimentMark(item.Sentiment), item.Title, item.Source))
	}
	return strings.Join(lines, "\n")
}

func sentimentMark(sentiment string) string {
	switch sentiment {
	case models.SentimentPositive:
		return "[+]"
	case models.SentimentNegative:
		return "[-]"
	default:
		return "[=]"
	}
}

func summarizeIndicators(snapshot models.IndicatorSnapshot) string {
	var parts []string

	rates := snapshot.Indicators.ExchangeRates
	if len(rates) > 0 {
		var quoted []string
		for _, cc := range []string{"USD", "EUR", "GBP", "JPY"} {
			if rate, ok := rates[cc]; ok {
				quoted = append(quoted, fmt.Sprintf("%s: %.2f", cc, rate.Rate))
			}
		}
		if len(quoted) > 0 {
			parts = append(parts, "Курси валют: "+strings.Join(quoted, ", "))
		}
	}

	crypto := snapshot.Indicators.Crypto
	if len(crypto) > 0 {
		var quoted []string
		for _, coin := range []string{"BTC", "ETH"} {
			if price, ok := crypto[coin]; ok {
				quoted = append(quoted, fmt.Sprintf("%s: $%.0f", coin, price.USD))
			}
		}
		if len(quoted) > 0 {
			parts = append(parts, "Криптовалюти: "+strings.Join(quoted, ", "))
		}
	}

	if snapshot.MarketStatus.Overall == models.MarketActive {
		parts = append(parts, "Ринки: АКТИВНІ")
	} else {
		parts = append(parts, "Ринки: НЕАКТИВНІ")
	}

	return strings.Join(parts, "\n")
}
