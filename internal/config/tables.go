package config

import "time"

// NewsSource describes one upstream feed.
type NewsSource struct {
	Name     string
	URL      string
	Type     string // rss | api
	Category string
}

var NewsSources = []NewsSource{
	{Name: "Reuters", URL: "https://www.reutersagency.com/feed/?best-topics=business-finance&post_type=best", Type: "rss", Category: "finance"},
	{Name: "Українська правда", URL: "https://www.epravda.com.ua/rss/", Type: "rss", Category: "ukraine"},
	{Name: "BBC Україна", URL: "https://www.bbc.com/ukrainian/index.xml", Type: "rss", Category: "ukraine"},
	{Name: "Investing.com RSS", URL: "https://www.investing.com/rss/news.rss", Type: "rss", Category: "markets"},
}

var Currencies = []string{
	"USD", "EUR", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD",
	"CNY", "RUB", "UAH", "PLN", "TRY", "INR", "BRL", "MXN",
}

var Crypto = []string{
	"BTC", "ETH", "BNB", "XRP", "SOL", "ADA", "DOT", "DOGE",
}

// KeywordTable holds the fixed scoring vocabulary. It is data, not logic:
// the scorers take it at construction so per-language tables can be swapped
// without touching the scoring code.
type KeywordTable struct {
	Positive       []string
	Negative       []string
	StrongPositive []string
	StrongNegative []string
	Groups         map[string][]string
}

var Keywords = KeywordTable{
	Positive: []string{
		"зростання", "підвищення", "прибуток", "інвестиції", "розвиток",
		"покращення", "стабільність", "позитивний", "сильний", "рекорд",
	},
	Negative: []string{
		"спад", "падіння", "зниження", "збитки", "криза", "нестабільність",
		"негативний", "слабкий", "обмеження", "дефіцит", "імпічмент",
	},
	StrongPositive: []string{
		"рекорд", "прорив", "істотне зростання", "значне покращення",
	},
	StrongNegative: []string{
		"криза", "крах", "колапс", "катастрофа", "руйнування",
	},
	Groups: map[string][]string{
		"positive_market": {
			"зростання", "підвищення", "прибуток", "інвестиції", "розвиток",
			"покращення", "стабільність", "позитивний", "сильний", "рекорд",
		},
		"negative_market": {
			"спад", "падіння", "зниження", "збитки", "криза", "нестабільність",
			"негативний", "слабкий", "обмеження", "дефіцит", "імпічмент",
		},
		"inflation":      {"інфляція", "інфляційний", "ціни", "підвищення цін", "зростання цін"},
		"interest_rates": {"відсоткова ставка", "ключова ставка", "ставка НБУ", "ставка ФРС"},
		"geopolitical":   {"війна", "конфлікт", "санкції", "переговори", "угода", "мир"},
		"economic_data":  {"ВВП", "економічне зростання", "безробіття", "експорт", "імпорт"},
	},
}

// ImpactKeywords maps each tracked asset to the phrases that tie a news item
// to it during impact analysis.
var ImpactKeywords = map[string][]string{
	"USD":  {"фрс", "долар", "американська економіка", "інфляція сша", "usd"},
	"EUR":  {"єцб", "євро", "єврозона", "економіка єс", "eur"},
	"GBP":  {"банк англії", "фунт", "великобританія", "gbp"},
	"JPY":  {"банк японії", "єна", "японія", "jpy"},
	"UAH":  {"нбу", "гривня", "україна", "uah"},
	"BTC":  {"біткоїн", "біткоін", "bitcoin", "btc", "криптовалют"},
	"ETH":  {"ethereum", "ефіріум", "eth"},
	"GOLD": {"золото", "gold"},
}

// UkrainianMonths translates month names found in local RSS dates.
var UkrainianMonths = map[string]string{
	"січня": "01", "лютого": "02", "березня": "03", "квітня": "04",
	"травня": "05", "червня": "06", "липня": "07", "серпня": "08",
	"вересня": "09", "жовтня": "10", "листопада": "11", "грудня": "12",
}

var kyivLocation = loadKyiv()

func loadKyiv() *time.Location {
	for _, name := range []string{"Europe/Kyiv", "Europe/Kiev"} {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("EET", 2*60*60)
}

// KyivNow returns the current time in the Kyiv timezone; market-status
// windows and the analysis schedule are defined against it.
func KyivNow() time.Time {
	return time.Now().In(kyivLocation)
}

// KyivLocation exposes the zone for code that converts externally supplied
// instants.
func KyivLocation() *time.Location {
	return kyivLocation
}
