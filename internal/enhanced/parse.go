// Package enhanced answers lookup-style requests: weather, news, stock
// quotes, jokes, Wikipedia summaries, places, cricket scores and email.
package enhanced

import (
	"regexp"
	"strings"
)

// Action identifies an enhanced-feature service.
type Action string

const (
	ActionWeather   Action = "weather"
	ActionNews      Action = "news"
	ActionStock     Action = "stock"
	ActionEmail     Action = "email"
	ActionJoke      Action = "joke"
	ActionWikipedia Action = "wikipedia"
	ActionLocation  Action = "location"
	ActionCricket   Action = "cricket"
	ActionUnknown   Action = "unknown"
)

var (
	weatherRe   = regexp.MustCompile(`(?:weather|temperature) (?:in |of |for |at )?(.+)`)
	newsRe      = regexp.MustCompile(`(technology|sports|business|health|science|entertainment) (?:news|headlines)`)
	stockRe     = regexp.MustCompile(`(?:stock price|share price|stock|price of) (?:of |for )?([a-z.]+)`)
	wikipediaRe = regexp.MustCompile(`(?:search wikipedia for|search wikipedia|wikipedia|tell me about|search for) (.+)`)
	locationRe  = regexp.MustCompile(`(?:find location of|find location|location of|where is|find) (.+)`)
)

// ParseCommand maps a command or utterance to an action and its parameter.
// The parameter is empty when the command names none. Email commands keep
// the original text so the message body is not lowercased.
func ParseCommand(command string) (Action, string) {
	original := strings.TrimSpace(command)
	cmd := strings.ToLower(original)

	switch {
	case strings.Contains(cmd, "send email") || strings.HasPrefix(cmd, "email"):
		return ActionEmail, original

	case strings.Contains(cmd, "weather") || strings.Contains(cmd, "temperature"):
		return ActionWeather, submatch(weatherRe, cmd)

	case strings.Contains(cmd, "news") || strings.Contains(cmd, "headlines"):
		return ActionNews, submatch(newsRe, cmd)

	case strings.Contains(cmd, "stock") || strings.Contains(cmd, "share price"):
		symbol := submatch(stockRe, cmd)
		if symbol == "" || symbol == "price" {
			symbol = "aapl"
		}
		return ActionStock, strings.ToUpper(symbol)

	case strings.Contains(cmd, "joke"):
		return ActionJoke, ""

	case strings.Contains(cmd, "wikipedia") || strings.Contains(cmd, "tell me about"):
		if q := submatch(wikipediaRe, cmd); q != "" {
			return ActionWikipedia, q
		}
		return ActionWikipedia, cmd

	case strings.Contains(cmd, "location") || strings.Contains(cmd, "where is"):
		if place := submatch(locationRe, cmd); place != "" {
			return ActionLocation, place
		}
		return ActionLocation, cmd

	case strings.Contains(cmd, "cricket") || strings.Contains(cmd, "score"):
		return ActionCricket, ""

	case strings.Contains(cmd, "email"):
		return ActionEmail, original
	}

	return ActionUnknown, cmd
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.Trim(strings.TrimSpace(m[1]), "?.!")
}
