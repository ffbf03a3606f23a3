package botdefense

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/iamhere/server/internal/logger"
)

const (
	// minimum score to consider a request as bot-like
	BotScoreThreshold = 40
)

// orchestrates all bot defense components
type Defense struct {
	config *Config
	store  *Store
}

// creates a new bot defense system
func New(config *Config) *Defense {
	return &Defense{
		config: config,
		store:  NewStore(config.TrapTTL, config.RateLimitWindow),
	}
}

// releases the store's background resources
func (d *Defense) Close() {
	d.store.Close()
}

// returns a Gin middleware that implements bot defense
func (d *Defense) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !d.config.Enabled {
			c.Next()
			return
		}

		ip := c.ClientIP()
		path := c.Request.URL.Path

		// exempt paths bypass all checks
		if d.config.IsExemptPath(path) {
			c.Next()
			return
		}

		// check if path is a honeypot
		if d.config.IsHoneypotPath(path) {
			d.handleHoneypot(c, ip, path)
			return
		}

		// check if IP is already trapped
		if trapped, reason := d.store.IsTrapped(ip); trapped {
			d.handleTrapped(c, ip, reason)
			return
		}

		// check rate limit
		if count := d.store.IncrementRate(ip); count > int64(d.config.RateLimit) {
			d.handleRateLimited(c, ip)
			return
		}

		// check suspicious path patterns
		if IsSuspiciousPath(path) {
			logger.Warn("suspicious path accessed", "ip", ip, "path", path)
			d.store.TrapIP(ip, ReasonBotPattern)
			d.handleTrapped(c, ip, ReasonBotPattern)

			return
		}

		// apply bot detection heuristics
		signals := DetectBot(c.Request)
		if signals.Score >= BotScoreThreshold {
			logger.Warn("bot-like request detected",
				"ip", ip,
				"path", path,
				"score", signals.Score,
				"pattern", signals.BotPatternMatch,
				"missing_headers", signals.MissingHeaders,
				"user_agent", c.Request.Header.Get("User-Agent"),
			)
			d.store.TrapIP(ip, ReasonBotPattern)
			d.handleTrapped(c, ip, ReasonBotPattern)

			return
		}

		c.Next()
	}
}

func (d *Defense) handleHoneypot(c *gin.Context, ip, path string) {
	logger.Warn("honeypot triggered", "ip", ip, "path", path)

	d.store.TrapIP(ip, ReasonHoneypot)

	if cryptoRandInt(2) == 0 {
		ServePoisonedJSON(c)
	} else {
		Tarpit(c, d.config.TarpitDuration, d.config.TarpitChunkDelay)
	}

	c.Abort()
}

func (d *Defense) handleTrapped(c *gin.Context, ip string, reason TrapReason) {
	logger.Debug("trapped IP request blocked", "ip", ip, "reason", string(reason))

	switch cryptoRandInt(3) {
	case 0:
		Tarpit(c, d.config.TarpitDuration, d.config.TarpitChunkDelay)
	case 1:
		TarpitJSON(c, d.config.TarpitDuration, d.config.TarpitChunkDelay)
	default:
		ServePoisonedJSON(c)
	}

	c.Abort()
}

func (d *Defense) handleRateLimited(c *gin.Context, ip string) {
	logger.Warn("rate limit exceeded", "ip", ip)

	c.Header("Retry-After", "60")
	c.AbortWithStatusJSON(429, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "too many requests. please slow down.",
	})
}
