package crpt

import (
	"context"
	"fmt"
	"time"

	"crpt-client/crpt/application"
	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"
	"crpt-client/logging"
)

// DefaultEndpoint é o endpoint de criação de documentos do sistema real.
const DefaultEndpoint = "https://ismp.crpt.ru/api/v3/lk/documents/create"

const statsTimeout = 2 * time.Second

type Client struct {
	svc      application.SubmissionService
	stats    domain.StatsStore
	limiter  domain.Limiter
	endpoint string
}

// New cria um cliente que emite no máximo requestLimit pedidos por timeUnit.
//
// Entra em pânico com timeUnit <= 0 ou requestLimit <= 0. O erro devolvido
// vem apenas da construção do transporte (política TLS inválida, CA ilegível).
func New(timeUnit time.Duration, requestLimit int, opts ...Option) (*Client, error) {
	if timeUnit <= 0 {
		panic("crpt: timeUnit must be > 0")
	}
	if requestLimit <= 0 {
		panic("crpt: requestLimit must be > 0")
	}

	o := options{
		endpoint: DefaultEndpoint,
		backend:  BackendBucket,
	}
	for _, opt := range opts {
		opt(&o)
	}

	limiter := o.limiter
	if limiter == nil {
		var err error
		limiter, err = NewLimiter(o.backend, requestLimit, timeUnit)
		if err != nil {
			return nil, err
		}
	}

	transport := o.transport
	if transport == nil {
		t, err := infra.NewHTTPTransport(o.transportConfig)
		if err != nil {
			return nil, fmt.Errorf("build transport: %w", err)
		}
		transport = t
	}

	encoder := o.encoder
	if encoder == nil {
		encoder = infra.NewJSONCodec()
	}

	return &Client{
		svc: application.SubmissionService{
			Admission: application.Admission{
				Limiter:        limiter,
				Pool:           infra.NewChanPool(o.concurrencyMax),
				AcquireTimeout: o.acquireTimeout,
			},
			Encoder:         encoder,
			Transport:       transport,
			Endpoint:        o.endpoint,
			SignatureHeader: o.signatureHeader,
		},
		stats:    o.stats,
		limiter:  limiter,
		endpoint: o.endpoint,
	}, nil
}

// NewLimiter constrói o backend de rate limit com capacity = limit e
// interval = unit.
func NewLimiter(backend LimiterBackend, limit int, unit time.Duration) (domain.Limiter, error) {
	switch backend {
	case "", BackendBucket:
		return infra.NewTokenBucket(limit, unit), nil
	case BackendXRate:
		return infra.NewRateLimiter(limit, unit), nil
	default:
		return nil, fmt.Errorf("unknown limiter backend %q", backend)
	}
}

func (c *Client) Endpoint() string { return c.endpoint }

// Limiter expõe o limiter em uso (inspeção em testes e no comando load).
func (c *Client) Limiter() domain.Limiter { return c.limiter }

// Submit envia um documento. Bloqueia enquanto o rate limit não libera.
// Nunca entra em pânico; o desfecho completo vem no Result.
func (c *Client) Submit(ctx context.Context, doc domain.Document, signature string) domain.Result {
	res := c.svc.Submit(ctx, doc, signature)
	c.record(ctx, doc, res)

	if res.OK() {
		logging.Success("submitted doc %q (id=%s, waited %s, took %s)", res.DocID, res.ID, res.Waited, res.Elapsed)
	} else {
		logging.Warn("submit doc %q failed (id=%s, kind=%s): %v", res.DocID, res.ID, res.Kind(), res.Err)
	}
	return res
}

func (c *Client) record(ctx context.Context, doc domain.Document, res domain.Result) {
	if c.stats == nil {
		return
	}

	// o envio já terminou; cancelamento do chamador não deve descartar a estatística
	statsCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()

	err := c.stats.Record(statsCtx, domain.StatsEvent{
		Participant: doc.Description.ParticipantInn,
		DocID:       res.DocID,
		Kind:        res.Kind(),
		StatusCode:  res.StatusCode,
		Waited:      res.Waited,
		At:          time.Now(),
	})
	if err != nil {
		logging.Warn("record submit stats: %v", err)
	}
}
