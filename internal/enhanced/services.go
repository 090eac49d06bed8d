package enhanced

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

// Weather reports current conditions for city, or the default city.
func (s *Service) Weather(ctx context.Context, city string) string {
	if city == "" {
		city = s.cfg.DefaultCity
	}
	if s.cfg.WeatherKey == "" {
		return fmt.Sprintf("Weather in %s: It's a beautiful day with moderate temperature. Configure an OpenWeatherMap API key for real weather data.", city)
	}

	var data struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Sys struct {
			Country string `json:"country"`
		} `json:"sys"`
	}
	params := url.Values{"q": {city}, "appid": {s.cfg.WeatherKey}, "units": {"metric"}}
	if err := s.getJSON(ctx, s.cfg.Endpoints.Weather, params, &data); err != nil {
		s.logFailure(ActionWeather, err)
		return fmt.Sprintf("Sorry, I couldn't fetch weather information for %s. Please check the city name.", city)
	}

	condition := "Unknown"
	if len(data.Weather) > 0 {
		condition = titleCase(data.Weather[0].Description)
	}
	return fmt.Sprintf("Weather in %s, %s:\nTemperature: %.1f°C (feels like %.1f°C)\nCondition: %s\nHumidity: %d%%",
		data.Name, data.Sys.Country, data.Main.Temp, data.Main.FeelsLike, condition, data.Main.Humidity)
}

var demoHeadlines = []string{
	"Tech companies report strong quarterly earnings",
	"Climate change summit reaches new agreements",
	"Space exploration mission achieves new milestones",
	"Healthcare innovations show promising results",
	"Economic markets show steady growth",
}

// News lists the top five headlines, optionally for one category.
func (s *Service) News(ctx context.Context, category string) string {
	const header = "Here are today's top headlines:"
	if s.cfg.NewsKey == "" {
		return numbered(header, demoHeadlines)
	}

	var data struct {
		Articles []struct {
			Title string `json:"title"`
		} `json:"articles"`
	}
	params := url.Values{"apiKey": {s.cfg.NewsKey}, "country": {s.cfg.NewsCountry}, "pageSize": {"5"}}
	if category != "" {
		params.Set("category", category)
	}
	if err := s.getJSON(ctx, s.cfg.Endpoints.News, params, &data); err != nil {
		s.logFailure(ActionNews, err)
		return "Sorry, I couldn't fetch the latest news at the moment."
	}
	if len(data.Articles) == 0 {
		return "No news articles found."
	}

	var titles []string
	for _, a := range data.Articles {
		if len(titles) == 5 {
			break
		}
		titles = append(titles, a.Title)
	}
	return numbered(header, titles)
}

var demoQuotes = map[string]string{
	"AAPL":  "$150.25 (+2.15%)",
	"GOOGL": "$2,845.67 (+1.23%)",
	"AMZN":  "$3,234.89 (-0.45%)",
	"MSFT":  "$342.56 (+0.87%)",
	"TSLA":  "$756.34 (+3.21%)",
}

// Stock reports the latest quote for symbol.
func (s *Service) Stock(ctx context.Context, symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		symbol = "AAPL"
	}
	if s.cfg.StockKey == "" {
		price, ok := demoQuotes[symbol]
		if !ok {
			price = "$XXX.XX (±X.XX%)"
		}
		return fmt.Sprintf("%s stock price: %s (demo data, configure an Alpha Vantage API key for real quotes)", symbol, price)
	}

	var data struct {
		Quote map[string]string `json:"Global Quote"`
	}
	params := url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}, "apikey": {s.cfg.StockKey}}
	if err := s.getJSON(ctx, s.cfg.Endpoints.Stock, params, &data); err != nil {
		s.logFailure(ActionStock, err)
		return "Sorry, I couldn't fetch stock information at the moment."
	}

	price, err := strconv.ParseFloat(data.Quote["05. price"], 64)
	if len(data.Quote) == 0 || err != nil {
		return fmt.Sprintf("Sorry, I couldn't find stock information for %s.", symbol)
	}
	return fmt.Sprintf("%s stock price: $%.2f (%s)", symbol, price, data.Quote["10. change percent"])
}

var emailRe = regexp.MustCompile(`(?i)\bto\s+(\S+@\S+)\s+subject\s+(.+?)\s+message\s+(.+)$`)

// ErrBadEmailCommand is reported when an email command lacks a recipient,
// subject or message.
var ErrBadEmailCommand = errors.New(`email command must look like "send email to <address> subject <subject> message <message>"`)

// ParseEmail extracts the recipient, subject and body from an email command.
func ParseEmail(command string) (to, subject, body string, err error) {
	m := emailRe.FindStringSubmatch(strings.TrimSpace(command))
	if m == nil {
		return "", "", "", ErrBadEmailCommand
	}
	return strings.TrimRight(m[1], ".,"), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), nil
}

// Email sends a plain-text email described by command.
func (s *Service) Email(ctx context.Context, command string) string {
	if s.mailer == nil {
		return "Email credentials not configured. Please set USER_EMAIL and USER_EMAIL_PASSWORD."
	}

	to, subject, body, err := ParseEmail(command)
	if err != nil {
		return "To send an email, say: send email to someone@example.com subject hello message see you soon."
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTP.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.mailer.DialAndSend(m); err != nil {
		s.logFailure(ActionEmail, err)
		return fmt.Sprintf("Sorry, I couldn't send the email to %s.", to)
	}
	return "Email sent successfully to " + to
}

type joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

var backupJokes = []joke{
	{"Why don't scientists trust atoms?", "Because they make up everything!"},
	{"What do you call a fake noodle?", "An impasta!"},
	{"Why did the scarecrow win an award?", "He was outstanding in his field!"},
	{"What do you call a bear with no teeth?", "A gummy bear!"},
	{"Why don't eggs tell jokes?", "They'd crack each other up!"},
	{"What's the best thing about Switzerland?", "I don't know, but the flag is a big plus!"},
	{"Why did the math book look so sad?", "Because it was full of problems!"},
}

// Joke tells a random joke, from the joke API or the built-in list.
func (s *Service) Joke(ctx context.Context) string {
	var j joke
	if err := s.getJSON(ctx, s.cfg.Endpoints.Joke, nil, &j); err != nil || j.Setup == "" {
		if err != nil {
			s.logFailure(ActionJoke, err)
		}
		j = backupJokes[s.cfg.Intn(len(backupJokes))]
	}
	return j.Setup + "\n" + j.Punchline
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// firstSentences returns at most n sentences of text.
func firstSentences(text string, n int) string {
	ends := sentenceEnd.FindAllStringIndex(text, n)
	if len(ends) < n {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[:ends[n-1][0]+1])
}

// Wikipedia summarises the article matching query.
func (s *Service) Wikipedia(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	title := strings.ReplaceAll(titleCase(query), " ", "_")

	var data struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Extract string `json:"extract"`
	}
	err := s.getJSON(ctx, s.cfg.Endpoints.Wikipedia+url.PathEscape(title), url.Values{"redirect": {"true"}}, &data)
	var status errStatus
	switch {
	case errors.As(err, &status) && int(status) == 404:
		return fmt.Sprintf("Sorry, I couldn't find any Wikipedia articles about '%s'.", query)
	case err != nil:
		s.logFailure(ActionWikipedia, err)
		return "Sorry, I couldn't reach Wikipedia right now."
	case data.Type == "disambiguation":
		return fmt.Sprintf("There are multiple articles about '%s'. Could you be more specific?", query)
	case strings.TrimSpace(data.Extract) == "":
		return fmt.Sprintf("Sorry, I couldn't find a Wikipedia page for '%s'.", query)
	}

	return fmt.Sprintf("According to Wikipedia:\n\n%s\n\nWould you like to know more about this topic?", firstSentences(data.Extract, 3))
}

// Location resolves place to an address and coordinates.
func (s *Service) Location(ctx context.Context, place string) string {
	if s.cfg.LocationKey == "" {
		return fmt.Sprintf("Location: %s\nConfigure an OpenCage API key for detailed location information including coordinates and country.", place)
	}

	var data struct {
		Results []struct {
			Formatted string `json:"formatted"`
			Geometry  struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}
	params := url.Values{"q": {place}, "key": {s.cfg.LocationKey}, "limit": {"1"}, "no_annotations": {"1"}}
	if err := s.getJSON(ctx, s.cfg.Endpoints.Location, params, &data); err != nil {
		s.logFailure(ActionLocation, err)
		return "Sorry, I couldn't access location services at the moment."
	}
	if len(data.Results) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find location information for '%s'.", place)
	}

	r := data.Results[0]
	return fmt.Sprintf("Location: %s\nAddress: %s\nCoordinates: %.4f, %.4f", place, r.Formatted, r.Geometry.Lat, r.Geometry.Lng)
}

var demoMatches = []string{
	"IND vs AUS: India 287/6 (45.2 overs) - Live",
	"ENG vs PAK: England won by 5 wickets",
	"SA vs NZ: South Africa 156/4 (28 overs) - Live",
}

// Cricket lists up to five current matches.
func (s *Service) Cricket(ctx context.Context) string {
	const header = "Current Cricket Matches:"
	if s.cfg.CricketKey == "" {
		return numbered(header, demoMatches)
	}

	var data struct {
		Data []struct {
			Status   string `json:"status"`
			TeamInfo []struct {
				ShortName string `json:"shortname"`
			} `json:"teamInfo"`
		} `json:"data"`
	}
	params := url.Values{"apikey": {s.cfg.CricketKey}, "offset": {"0"}}
	if err := s.getJSON(ctx, s.cfg.Endpoints.Cricket, params, &data); err != nil {
		s.logFailure(ActionCricket, err)
		return "Sorry, I couldn't fetch cricket scores at the moment."
	}
	if len(data.Data) == 0 {
		return "No cricket matches are currently being played."
	}

	var matches []string
	for _, m := range data.Data {
		if len(matches) == 5 {
			break
		}
		team1, team2 := "Team1", "Team2"
		if len(m.TeamInfo) > 0 && m.TeamInfo[0].ShortName != "" {
			team1 = m.TeamInfo[0].ShortName
		}
		if len(m.TeamInfo) > 1 && m.TeamInfo[1].ShortName != "" {
			team2 = m.TeamInfo[1].ShortName
		}
		status := m.Status
		if status == "" {
			status = "Status unknown"
		}
		matches = append(matches, fmt.Sprintf("%s vs %s: %s", team1, team2, status))
	}
	return numbered(header, matches)
}
