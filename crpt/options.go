package crpt

import (
	"time"

	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"
)

// LimiterBackend escolhe a implementação do rate limit.
type LimiterBackend string

const (
	// BackendBucket usa infra.TokenBucket (padrão).
	BackendBucket LimiterBackend = "bucket"
	// BackendXRate usa golang.org/x/time/rate.
	BackendXRate LimiterBackend = "xrate"
)

type options struct {
	endpoint        string
	backend         LimiterBackend
	limiter         domain.Limiter
	transport       domain.Transport
	transportConfig infra.TransportConfig
	encoder         domain.Encoder
	stats           domain.StatsStore
	concurrencyMax  int
	acquireTimeout  time.Duration
	signatureHeader string
}

type Option func(*options)

func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

func WithLimiterBackend(b LimiterBackend) Option {
	return func(o *options) { o.backend = b }
}

// WithLimiter substitui o limiter construído a partir de timeUnit/requestLimit.
func WithLimiter(l domain.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithTransport substitui o HTTPTransport; TransportConfig é ignorado.
func WithTransport(t domain.Transport) Option {
	return func(o *options) { o.transport = t }
}

func WithTransportConfig(cfg infra.TransportConfig) Option {
	return func(o *options) { o.transportConfig = cfg }
}

func WithEncoder(e domain.Encoder) Option {
	return func(o *options) { o.encoder = e }
}

// WithStats registra o desfecho de cada envio. Falhas de gravação só geram log.
func WithStats(s domain.StatsStore) Option {
	return func(o *options) { o.stats = s }
}

// WithConcurrencyMax limita envios em voo ao mesmo tempo. 0 = sem limite.
func WithConcurrencyMax(max int) Option {
	return func(o *options) { o.concurrencyMax = max }
}

// WithAcquireTimeout limita a espera pelo rate limit e pela vaga de envio.
func WithAcquireTimeout(d time.Duration) Option {
	return func(o *options) { o.acquireTimeout = d }
}

// WithSignatureHeader envia a assinatura no cabeçalho informado.
func WithSignatureHeader(name string) Option {
	return func(o *options) { o.signatureHeader = name }
}
