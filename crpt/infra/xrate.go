package infra

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter é o backend alternativo baseado em golang.org/x/time/rate.
//
// x/time/rate nasce com o bucket cheio; na construção consumimos capacity-1
// tokens para partir do mesmo estado do TokenBucket (um token disponível).
type RateLimiter struct {
	lim   *rate.Limiter
	burst int
}

func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	if capacity <= 0 {
		panic("infra: rate limiter capacity must be > 0")
	}
	if interval <= 0 {
		panic("infra: rate limiter interval must be > 0")
	}

	lim := rate.NewLimiter(rate.Limit(float64(capacity)/interval.Seconds()), capacity)
	if capacity > 1 {
		lim.AllowN(time.Now(), capacity-1)
	}
	return &RateLimiter{lim: lim, burst: capacity}
}

func (l *RateLimiter) RPS() float64 { return float64(l.lim.Limit()) }
func (l *RateLimiter) Burst() int   { return l.burst }

// Acquire implementa domain.Limiter.
//
// Observação: Wait falha antes de dormir quando a espera necessária já passa
// do deadline do ctx; esse erro não é ctx.Err().
func (l *RateLimiter) Acquire(ctx context.Context) error {
	return l.lim.Wait(ctx)
}
