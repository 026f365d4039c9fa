package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit allows limit requests per window for each client IP, refilling
// continuously. Idle visitors are forgotten after ten windows.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 || per <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	every := rate.Every(per / time.Duration(limit))
	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = time.Now()
	)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIPForRateLimit(r)
			now := time.Now()

			mu.Lock()
			if now.Sub(lastSweep) > per {
				for key, v := range visitors {
					if now.Sub(v.lastSeen) > 10*per {
						delete(visitors, key)
					}
				}
				lastSweep = now
			}
			v, ok := visitors[ip]
			if !ok {
				v = &visitor{limiter: rate.NewLimiter(every, limit)}
				visitors[ip] = v
			}
			v.lastSeen = now
			allowed := v.limiter.AllowN(now, 1)
			mu.Unlock()

			if !allowed {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"Too many requests"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
