package markets

import (
	"testing"
	"time"

	"currency-advisor/backend-go/internal/models"
)

func at(t *testing.T, value string) time.Time {
	tm, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time: %v", err)
	}
	return tm
}

func TestStatusWeekdayAfternoon(t *testing.T) {
	// Wednesday 14:00 Kyiv: forex and European session open, US not yet.
	status := StatusAt(at(t, "2024-03-06 14:00"))

	if status.Markets["forex"].Status != models.MarketOpen {
		t.Fatal("forex must be open midweek")
	}
	if status.Markets["european_stocks"].Status != models.MarketOpen {
		t.Fatal("European stocks must be open at 14:00")
	}
	if status.Markets["us_stocks"].Status != models.MarketClosed {
		t.Fatal("US stocks must be closed at 14:00 Kyiv")
	}
	if status.Markets["ukrainian_stocks"].Status != models.MarketOpen {
		t.Fatal("Ukrainian stocks must be open at 14:00")
	}
	if status.Overall != models.MarketActive {
		t.Fatal("overall must be ACTIVE when any market is open")
	}
}

func TestStatusSaturdayNight(t *testing.T) {
	// Saturday 23:30: everything but crypto closed.
	status := StatusAt(at(t, "2024-03-09 23:30"))

	if status.Markets["forex"].Status != models.MarketClosed {
		t.Fatal("forex must be closed Saturday night")
	}
	if status.Markets["european_stocks"].Status != models.MarketClosed {
		t.Fatal("European stocks must be closed on weekend")
	}
	if status.Markets["crypto"].Status != models.MarketOpen {
		t.Fatal("crypto never closes")
	}
	if status.Overall != models.MarketActive {
		t.Fatal("crypto keeps the aggregate ACTIVE")
	}
}

func TestStatusSundayLateForexReopens(t *testing.T) {
	// Sunday 23:30: forex week has started again.
	status := StatusAt(at(t, "2024-03-10 23:30"))
	if status.Markets["forex"].Status != models.MarketOpen {
		t.Fatal("forex must reopen Sunday 23:00")
	}
}

func TestStatusUSSessionEvening(t *testing.T) {
	// Tuesday 20:00 Kyiv: US session open, European closed.
	status := StatusAt(at(t, "2024-03-05 20:00"))
	if status.Markets["us_stocks"].Status != models.MarketOpen {
		t.Fatal("US stocks must be open at 20:00 Kyiv")
	}
	if status.Markets["european_stocks"].Status != models.MarketClosed {
		t.Fatal("European stocks must be closed at 20:00")
	}
}
