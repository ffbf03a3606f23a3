package botdefense

import (
	"sync"
	"time"
)

// why an IP was trapped
type TrapReason string

const (
	ReasonHoneypot   TrapReason = "honeypot"
	ReasonBotPattern TrapReason = "bot_pattern"
	ReasonRateLimit  TrapReason = "rate_limit"
)

type trapEntry struct {
	reason    TrapReason
	expiresAt time.Time
}

type rateEntry struct {
	count       int64
	windowStart time.Time
}

// tracks trapped IPs and per-IP request rates in memory
type Store struct {
	mu       sync.RWMutex
	trapped  map[string]trapEntry
	rates    map[string]rateEntry
	trapTTL  time.Duration
	window   time.Duration
	stopOnce sync.Once
	stop     chan struct{}
}

// returns a new store and starts its cleanup goroutine
func NewStore(trapTTL, rateWindow time.Duration) *Store {
	s := &Store{
		trapped: make(map[string]trapEntry),
		rates:   make(map[string]rateEntry),
		trapTTL: trapTTL,
		window:  rateWindow,
		stop:    make(chan struct{}),
	}

	go s.cleanupExpired()

	return s
}

// marks an IP as trapped until its TTL elapses
func (s *Store) TrapIP(ip string, reason TrapReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trapped[ip] = trapEntry{
		reason:    reason,
		expiresAt: time.Now().Add(s.trapTTL),
	}
}

// reports whether an IP is currently trapped
func (s *Store) IsTrapped(ip string) (bool, TrapReason) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.trapped[ip]
	if !exists || time.Now().After(entry.expiresAt) {
		return false, ""
	}

	return true, entry.reason
}

// counts a request against the IP's current window and returns the new total
func (s *Store) IncrementRate(ip string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	entry, exists := s.rates[ip]
	if !exists || now.Sub(entry.windowStart) > s.window {
		entry = rateEntry{windowStart: now}
	}

	entry.count++
	s.rates[ip] = entry

	return entry.count
}

// stops the cleanup goroutine
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// runs periodically to drop expired traps and stale rate windows
func (s *Store) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()

			for ip, entry := range s.trapped {
				if now.After(entry.expiresAt) {
					delete(s.trapped, ip)
				}
			}

			for ip, entry := range s.rates {
				if now.Sub(entry.windowStart) > s.window {
					delete(s.rates, ip)
				}
			}

			s.mu.Unlock()
		}
	}
}
