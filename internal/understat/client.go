// Package understat scrapes Expected Goals data from understat.com, the
// pipeline's second optional enrichment source. Understat embeds its data
// as JSON.parse('...') variables inside inline script tags; there is no
// public API.
package understat

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"eplpulse/internal/config"
)

const (
	requestDelay = 500 * time.Millisecond
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// CacheMaxAge is how long fetched xG tables stay fresh. Understat updates
// at most daily.
const CacheMaxAge = 24 * time.Hour

// Fresh reports whether every path exists and was modified within maxAge.
func Fresh(maxAge time.Duration, paths ...string) bool {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return false
		}
		if time.Since(info.ModTime()) >= maxAge {
			return false
		}
	}
	return true
}

// League holds the three raw JSON documents embedded in a league page.
type League struct {
	DatesData   string // array of matches
	TeamsData   string // object keyed by team id
	PlayersData string // array of players
}

// Client fetches Understat league pages.
type Client struct {
	cfg   config.Config
	http  *resty.Client
	sleep func(time.Duration)
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:   cfg,
		http:  resty.New().SetTimeout(30 * time.Second),
		sleep: time.Sleep,
	}
}

// FetchLeague downloads the EPL league page for the given Understat year
// and extracts its embedded data variables.
func (c *Client) FetchLeague(year string) (League, error) {
	url := fmt.Sprintf(c.cfg.UnderstatLeagueURL, year)
	resp, err := c.http.R().SetHeader("User-Agent", userAgent).Get(url)
	if err != nil {
		return League{}, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return League{}, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode())
	}
	c.sleep(requestDelay)
	return ExtractLeague(resp.String())
}

// ExtractLeague pulls datesData, teamsData and playersData out of a league
// page. A direct regex over the full page is tried first; if any variable
// is missing the inline script tags are walked individually, which copes
// with markup changes around the scripts.
func ExtractLeague(html string) (League, error) {
	league := League{
		DatesData:   extractVar(html, "datesData"),
		TeamsData:   extractVar(html, "teamsData"),
		PlayersData: extractVar(html, "playersData"),
	}
	if league.DatesData != "" && league.TeamsData != "" && league.PlayersData != "" {
		return league, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return League{}, fmt.Errorf("parse league page: %w", err)
	}
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if league.DatesData == "" {
			league.DatesData = extractVar(text, "datesData")
		}
		if league.TeamsData == "" {
			league.TeamsData = extractVar(text, "teamsData")
		}
		if league.PlayersData == "" {
			league.PlayersData = extractVar(text, "playersData")
		}
	})

	if league.DatesData == "" {
		return League{}, fmt.Errorf("datesData not found in league page")
	}
	return league, nil
}

var varPatterns = map[string]*regexp.Regexp{}

func varPattern(name string) *regexp.Regexp {
	if re, ok := varPatterns[name]; ok {
		return re
	}
	re := regexp.MustCompile(`var\s+` + name + `\s*=\s*JSON\.parse\('(.+?)'\)`)
	varPatterns[name] = re
	return re
}

// extractVar returns the decoded JSON text of one JSON.parse variable, or
// "" when the variable is not present.
func extractVar(text, name string) string {
	m := varPattern(name).FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return unescapeJS(m[1])
}

// unescapeJS decodes the \xHH and \uHHHH escapes inside a single-quoted
// JS string literal. Understat hex-escapes every quote and non-ASCII byte.
func unescapeJS(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}
		switch s[i+1] {
		case 'x':
			if i+4 <= len(s) {
				if v, ok := hexVal(s[i+2 : i+4]); ok {
					b.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			b.WriteByte(s[i+1])
			i += 2
		case 'u':
			if i+6 <= len(s) {
				if v, ok := hexVal(s[i+2 : i+6]); ok {
					b.WriteRune(rune(v))
					i += 6
					continue
				}
			}
			b.WriteByte(s[i+1])
			i += 2
		case '\\', '\'', '"', '/':
			b.WriteByte(s[i+1])
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i += 2
		}
	}
	return b.String()
}

func hexVal(s string) (int, bool) {
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v = v*16 + int(c-'0')
		case c >= 'a' && c <= 'f':
			v = v*16 + int(c-'a'+10)
		case c >= 'A' && c <= 'F':
			v = v*16 + int(c-'A'+10)
		default:
			return 0, false
		}
	}
	return v, true
}
