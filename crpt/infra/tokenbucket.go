package infra

import (
	"context"
	"math"
	"sync"
	"time"
)

// TokenBucket é um token bucket contínuo: tokens reabastecem a
// capacity/interval por segundo, limitados a capacity.
//
// Todo o estado (tokens e último instante observado) fica atrás de um único
// mutex. Quem precisa esperar dorme fora do lock e depois tenta de novo, então
// não há ordem FIFO entre os que esperam.
//
// O bucket nasce com um token: a primeira chamada passa na hora e a partir
// daí a chamada capacity*k+1 nunca termina antes de k*interval.
type TokenBucket struct {
	mu       sync.Mutex
	capacity float64
	interval time.Duration
	rate     float64 // tokens por segundo
	tokens   float64
	last     time.Time
	now      func() time.Time
}

type BucketOption func(*TokenBucket)

// WithClock troca a fonte de tempo (testes).
func WithClock(now func() time.Time) BucketOption {
	return func(b *TokenBucket) { b.now = now }
}

// NewTokenBucket entra em pânico com capacity <= 0 ou interval <= 0:
// é erro de programação, não de execução.
func NewTokenBucket(capacity int, interval time.Duration, opts ...BucketOption) *TokenBucket {
	if capacity <= 0 {
		panic("infra: token bucket capacity must be > 0")
	}
	if interval <= 0 {
		panic("infra: token bucket interval must be > 0")
	}

	b := &TokenBucket{
		capacity: float64(capacity),
		interval: interval,
		rate:     float64(capacity) / interval.Seconds(),
		tokens:   1,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.last = b.now()
	return b
}

func (b *TokenBucket) RPS() float64            { return b.rate }
func (b *TokenBucket) Burst() int              { return int(b.capacity) }
func (b *TokenBucket) Interval() time.Duration { return b.interval }

// Acquire implementa domain.Limiter.
func (b *TokenBucket) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for {
		wait, ok := b.reserve()
		if ok {
			return nil
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// TryAcquire consome um token se houver, sem bloquear.
func (b *TokenBucket) TryAcquire() bool {
	_, ok := b.reserve()
	return ok
}

// Available devolve os tokens disponíveis agora (após o refill).
func (b *TokenBucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(b.now())
	return b.tokens
}

// reserve consome um token ou devolve quanto falta esperar para o próximo.
func (b *TokenBucket) reserve() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(b.now())
	// exige um token inteiro; sobra de arredondamento vira nova espera curta
	if b.tokens >= 1 {
		b.tokens--
		return 0, true
	}

	missing := 1 - b.tokens
	wait := time.Duration(math.Ceil(missing / b.rate * float64(time.Second)))
	if wait <= 0 {
		wait = time.Microsecond
	}
	return wait, false
}

// refill só avança: relógio voltando para trás não remove tokens.
func (b *TokenBucket) refill(now time.Time) {
	if !now.After(b.last) {
		return
	}
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.rate)
	b.last = now
}
