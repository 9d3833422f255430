package limiter

import (
	"net/http"
	"sync"
	"time"

	"greetgo/internal/util"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store keeps one token bucket per client IP. Idle entries are
// evicted so the map does not grow with every visitor ever seen.
type Store struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	stop    chan struct{}
}

func NewStore(rps float64, burst int) *Store {
	return &Store{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 5 * time.Minute,
		stop:    make(chan struct{}),
	}
}

func (s *Store) limiterFor(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[key]; ok {
		c.lastSeen = time.Now()
		return c.limiter
	}
	l := rate.NewLimiter(s.rps, s.burst)
	s.clients[key] = &client{limiter: l, lastSeen: time.Now()}
	return l
}

// CleanupLoop evicts idle clients until Stop is called.
// Run it in its own goroutine.
func (s *Store) CleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) Stop() {
	close(s.stop)
}

func (s *Store) evictIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, c := range s.clients {
		if time.Since(c.lastSeen) > s.idleTTL {
			delete(s.clients, k)
		}
	}
}

func (s *Store) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Middleware rejects requests from IPs that exhausted their bucket.
func (s *Store) Middleware(trustedHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := util.RealClientIP(r, trustedHeader)
			if !s.limiterFor(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
