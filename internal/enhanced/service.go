package enhanced

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ShayCichocki/vox/internal/logging"
)

// Endpoints are the upstream API base URLs. Zero values use the public
// services.
type Endpoints struct {
	Weather   string
	News      string
	Stock     string
	Joke      string
	Wikipedia string
	Location  string
	Cricket   string
}

func (e Endpoints) withDefaults() Endpoints {
	def := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Endpoints{
		Weather:   def(e.Weather, "https://api.openweathermap.org/data/2.5/weather"),
		News:      def(e.News, "https://newsapi.org/v2/top-headlines"),
		Stock:     def(e.Stock, "https://www.alphavantage.co/query"),
		Joke:      def(e.Joke, "https://official-joke-api.appspot.com/random_joke"),
		Wikipedia: def(e.Wikipedia, "https://en.wikipedia.org/api/rest_v1/page/summary/"),
		Location:  def(e.Location, "https://api.opencagedata.com/geocode/v1/json"),
		Cricket:   def(e.Cricket, "https://api.cricapi.com/v1/currentMatches"),
	}
}

// SMTP holds outgoing mail settings.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends composed messages. *gomail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config configures a Service. A missing API key makes the matching
// service answer with demo data.
type Config struct {
	WeatherKey  string
	NewsKey     string
	StockKey    string
	LocationKey string
	CricketKey  string
	SMTP        SMTP

	DefaultCity string
	NewsCountry string
	Timeout     time.Duration
	Endpoints   Endpoints
	HTTPClient  *http.Client
	Mailer      Mailer
	Logger      logging.Logger

	// Intn picks a backup joke. Defaults to math/rand.
	Intn func(n int) int
}

// Service answers enhanced-feature commands.
type Service struct {
	cfg    Config
	client *http.Client
	mailer Mailer
	logger logging.Logger
}

// New creates a Service.
func New(cfg Config) *Service {
	if cfg.DefaultCity == "" {
		cfg.DefaultCity = "London"
	}
	if cfg.NewsCountry == "" {
		cfg.NewsCountry = "us"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}
	if cfg.Intn == nil {
		cfg.Intn = rand.Intn
	}
	cfg.Endpoints = cfg.Endpoints.withDefaults()

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	mailer := cfg.Mailer
	if mailer == nil && cfg.SMTP.Username != "" && cfg.SMTP.Password != "" {
		mailer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	}

	return &Service{cfg: cfg, client: client, mailer: mailer, logger: logging.OrNop(cfg.Logger)}
}

// Answer routes command to the matching service and returns a sentence
// suitable for speaking. Upstream failures are reported as sentences; only
// context cancellation is returned as an error.
func (s *Service) Answer(ctx context.Context, command string) (string, error) {
	action, param := ParseCommand(command)
	s.logger.Debug("enhanced", "routing command", logging.Fields{
		"action": string(action),
		"param":  param,
	})

	var answer string
	switch action {
	case ActionWeather:
		answer = s.Weather(ctx, param)
	case ActionNews:
		answer = s.News(ctx, param)
	case ActionStock:
		answer = s.Stock(ctx, param)
	case ActionEmail:
		answer = s.Email(ctx, param)
	case ActionJoke:
		answer = s.Joke(ctx)
	case ActionWikipedia:
		answer = s.Wikipedia(ctx, param)
	case ActionLocation:
		answer = s.Location(ctx, param)
	case ActionCricket:
		answer = s.Cricket(ctx)
	default:
		answer = "Sorry, I don't know how to help with that yet."
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return answer, nil
}

// errStatus is returned by getJSON for non-200 responses.
type errStatus int

func (e errStatus) Error() string { return fmt.Sprintf("HTTP %d", int(e)) }

func (s *Service) getJSON(ctx context.Context, base string, params url.Values, out interface{}) error {
	u := base
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "vox/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errStatus(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (s *Service) logFailure(action Action, err error) {
	s.logger.Warn("enhanced", "upstream call failed", logging.Fields{
		"action": string(action),
		"error":  err,
	})
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func numbered(header string, items []string) string {
	var b strings.Builder
	b.WriteString(header)
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, item)
	}
	return b.String()
}
