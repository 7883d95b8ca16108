package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cosspos/internal/apierror"
)

// RateLimiter applies a per-IP token bucket. Buckets idle for over a minute
// are swept to keep the map bounded.
func RateLimiter(rps int) gin.HandlerFunc {
	type bucket struct {
		tokens    float64
		ultimoUso time.Time
	}
	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)
	go func() {
		for range time.Tick(time.Minute) {
			mu.Lock()
			for ip, b := range buckets {
				if time.Since(b.ultimoUso) > time.Minute {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{tokens: float64(rps)}
			buckets[ip] = b
		}
		transcurrido := time.Since(b.ultimoUso).Seconds()
		b.tokens += transcurrido * float64(rps)
		if b.tokens > float64(rps) {
			b.tokens = float64(rps)
		}
		b.ultimoUso = time.Now()
		if b.tokens < 1 {
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New(http.StatusTooManyRequests, "demasiadas solicitudes"))
			return
		}
		b.tokens--
		mu.Unlock()
		c.Next()
	}
}
