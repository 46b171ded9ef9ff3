package job

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CAD": "CA$",
	"AUD": "A$",
}

var printer = message.NewPrinter(language.English)

// FormatSalary renders a salary range for display. Zero counts as unset.
func FormatSalary(salaryMin, salaryMax *int, currency string) string {
	hasMin := salaryMin != nil && *salaryMin != 0
	hasMax := salaryMax != nil && *salaryMax != 0

	switch {
	case hasMin && hasMax:
		return money(*salaryMin, currency) + " - " + money(*salaryMax, currency)
	case hasMin:
		return "From " + money(*salaryMin, currency)
	case hasMax:
		return "Up to " + money(*salaryMax, currency)
	default:
		return ""
	}
}

func money(amount int, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	return symbol + printer.Sprintf("%d", amount)
}

func PostedAgo(created, now time.Time) string {
	days := int(now.Sub(created).Hours() / 24)
	switch {
	case days <= 0:
		return "Posted today"
	case days == 1:
		return "Posted 1 day ago"
	default:
		return fmt.Sprintf("Posted %d days ago", days)
	}
}
