package botdefense

import (
	"net/http"
	"strings"
)

// known bot user-agent patterns (case-insensitive matching)
var botPatterns = []string{
	// generic bot indicators
	"bot",
	"crawler",
	"spider",
	"scraper",
	"scan",
	// cli tools
	"curl",
	"wget",
	"httpie",
	// programming libraries
	"python-requests",
	"python-urllib",
	"go-http-client",
	"node-fetch",
	"axios",
	"okhttp",
	"libwww",
	// headless browsers (when exposed)
	"headless",
	"phantomjs",
	"selenium",
	"puppeteer",
	"playwright",
	// specific scrapers
	"scrapy",
	"httrack",
}

// legitimate browser indicators
var browserIndicators = []string{
	"mozilla",
	"chrome",
	"safari",
	"firefox",
	"edge",
	"opera",
}

// contains detected bot indicators
type BotSignals struct {
	EmptyUserAgent  bool
	ShortUserAgent  bool
	BotPatternMatch string
	MissingHeaders  []string
	Score           int
}

// analyzes a request for bot indicators
// returns signals and a score (higher = more likely bot)
func DetectBot(r *http.Request) *BotSignals {
	signals := &BotSignals{}
	userAgent := r.Header.Get("User-Agent")
	userAgentLower := strings.ToLower(userAgent)

	switch {
	case userAgent == "":
		signals.EmptyUserAgent = true
		signals.Score += 50
	case len(userAgent) < 20:
		signals.ShortUserAgent = true
		signals.Score += 30
	}

	for _, pattern := range botPatterns {
		if strings.Contains(userAgentLower, pattern) {
			signals.BotPatternMatch = pattern
			signals.Score += 40

			break
		}
	}

	// real browsers always send these
	for _, header := range []string{"Accept-Language", "Accept-Encoding", "Accept"} {
		if r.Header.Get(header) == "" {
			signals.MissingHeaders = append(signals.MissingHeaders, header)
			signals.Score += 10
		}
	}

	// connection: close is often used by scripts
	if r.Header.Get("Connection") == "close" && !hasBrowserIndicator(userAgentLower) {
		signals.Score += 15
	}

	// reduce score if it looks like a real browser
	if hasBrowserIndicator(userAgentLower) && len(signals.MissingHeaders) == 0 {
		signals.Score -= 20
		if signals.Score < 0 {
			signals.Score = 0
		}
	}

	return signals
}

// checks if the user-agent contains browser indicators
func hasBrowserIndicator(userAgentLower string) bool {
	for _, indicator := range browserIndicators {
		if strings.Contains(userAgentLower, indicator) {
			return true
		}
	}

	return false
}

// checks if the request path looks like probing
func IsSuspiciousPath(path string) bool {
	pathLower := strings.ToLower(path)

	suspiciousPatterns := []string{
		".php",
		".asp",
		".aspx",
		".jsp",
		".cgi",
		"..%2f", // path traversal
		"../",
		"%00", // null byte
		"<script",
		"union+select",
		"' or '",
	}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(pathLower, pattern) {
			return true
		}
	}

	return false
}
