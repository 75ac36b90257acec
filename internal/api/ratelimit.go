// Rate limiting for the mutating endpoint. Advancing the simulation is
// CPU-bound work, so POST /simulate is throttled per client IP.
package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter grants each client IP a fixed number of requests per window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	used    int
	started time.Time
}

// NewRateLimiter allows limit requests per period for each client IP.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go rl.sweep()
	return rl
}

// Allow charges one request against ip and reports whether it may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[ip]
	if !ok || now.Sub(w.started) >= rl.period {
		rl.clients[ip] = &window{used: 1, started: now}
		return true
	}
	if w.used < rl.limit {
		w.used++
		return true
	}
	return false
}

// RetryAfter returns whole seconds until the window resets for ip.
func (rl *RateLimiter) RetryAfter(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.clients[ip]
	if !ok {
		return 0
	}
	left := rl.period - time.Since(w.started)
	if left <= 0 {
		return 0
	}
	return int(left.Seconds()) + 1
}

// sweep drops long-expired windows so the client map stays small.
func (rl *RateLimiter) sweep() {
	for range time.Tick(time.Hour) {
		rl.mu.Lock()
		now := time.Now()
		for ip, w := range rl.clients {
			if now.Sub(w.started) > 2*rl.period {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// limitRate wraps next and answers 429 once a client exhausts its window.
func limitRate(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(ip)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientIP prefers the first X-Forwarded-For hop, else the peer address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i, c := range xff {
			if c == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
