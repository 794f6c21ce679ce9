package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/cache"
	"gostorefront/internal/pkg/logger"
)

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RateLimiter conta requisições por IP em uma janela fixa armazenada no Redis.
// Se o Redis falhar a requisição segue (o limitador não derruba a vitrine).
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger, onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + clientIP(r)
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			if errors.Is(err, cache.ErrCacheMiss) {
				if err := client.Set(ctx, key, 1, window); err != nil {
					log.Warn("Falha ao iniciar contador de rate limit.", map[string]interface{}{"error": err.Error()})
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn("Rate limit indisponível, requisição liberada.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count >= limit {
				w.Header().Set("X-RateLimit-Remaining", "0")
				onError(w, r, apperror.NewTooManyRequestsError("muitas requisições, tente novamente em instantes."))
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Warn("Falha ao incrementar contador de rate limit.", map[string]interface{}{"error": err.Error()})
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}

// LocalRateLimiter usa um token bucket por IP em memória, para instâncias sem Redis.
// limit requisições por window, com rajada igual a limit.
func LocalRateLimiter(limit int, window time.Duration, onError ErrorWriter) func(http.Handler) http.Handler {
	limiters := newIPLimiters(limit, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.allow(clientIP(r)) {
				onError(w, r, apperror.NewTooManyRequestsError("muitas requisições, tente novamente em instantes."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters guarda um bucket por IP. Um bucket ocioso por uma janela inteira já está cheio
// de novo, então pode ser descartado sem mudar o resultado.
type ipLimiters struct {
	mu        sync.Mutex
	every     rate.Limit
	burst     int
	idle      time.Duration
	entries   map[string]*ipLimiter
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(limit int, window time.Duration) *ipLimiters {
	return &ipLimiters{
		every:   rate.Every(window / time.Duration(max(1, limit))),
		burst:   max(1, limit),
		idle:    window,
		entries: make(map[string]*ipLimiter),
		now:     time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// sweep remove os IPs ociosos há pelo menos uma janela. Chamado com mu travado.
func (l *ipLimiters) sweep(now time.Time) int {
	removed := 0
	for ip, e := range l.entries {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.entries, ip)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}
