package markets

import (
	"time"

	"currency-advisor/backend-go/internal/models"
)

// StatusAt derives per-market open/closed flags from the Kyiv-local clock.
// No network involved; trading windows are fixed:
// forex ~24/5, crypto 24/7, European stocks 08-17, US stocks 16-23,
// Ukrainian stocks 10-18 (all hours Kyiv time).
func StatusAt(now time.Time) models.MarketStatus {
	weekday := int(now.Weekday()+6) % 7 // 0 = Monday, matching trading-week math
	hour := now.Hour()

	markets := make(map[string]models.MarketState, 5)

	// Forex runs from Sunday 23:00 to Friday 23:00.
	if weekday < 5 || (weekday == 5 && hour < 23) || (weekday == 6 && hour >= 23) {
		next := "Пт 23:00"
		if weekday >= 5 {
			next = "Нд 23:00"
		}
		markets["forex"] = models.MarketState{Status: models.MarketOpen, NextChange: next}
	} else {
		markets["forex"] = models.MarketState{Status: models.MarketClosed, NextChange: "Нд 23:00"}
	}

	markets["crypto"] = models.MarketState{Status: models.MarketOpen, NextChange: "Немає"}

	if weekday < 5 && hour >= 8 && hour < 17 {
		markets["european_stocks"] = models.MarketState{Status: models.MarketOpen, NextChange: "17:30"}
	} else {
		next := "09:00"
		if weekday >= 5 {
			next = "Пн 09:00"
		}
		markets["european_stocks"] = models.MarketState{Status: models.MarketClosed, NextChange: next}
	}

	if weekday < 5 && hour >= 16 && hour < 23 {
		markets["us_stocks"] = models.MarketState{Status: models.MarketOpen, NextChange: "23:00"}
	} else {
		next := "16:30"
		if weekday >= 5 {
			next = "Пн 16:30"
		}
		markets["us_stocks"] = models.MarketState{Status: models.MarketClosed, NextChange: next}
	}

	if weekday < 5 && hour >= 10 && hour < 18 {
		markets["ukrainian_stocks"] = models.MarketState{Status: models.MarketOpen, NextChange: "18:00"}
	} else {
		next := "10:00"
		if weekday >= 5 {
			next = "Пн 10:00"
		}
		markets["ukrainian_stocks"] = models.MarketState{Status: models.MarketClosed, NextChange: next}
	}

	overall := models.MarketInactive
	for _, state := range markets {
		if state.Status == models.MarketOpen {
			overall = models.MarketActive
			break
		}
	}
	return models.MarketStatus{Markets: markets, Overall: overall}
}
