package domain

import (
	"context"
	"time"
)

// StatsEvent representa o desfecho de um envio.
//
// Observação: cuidado com cardinalidade ao rastrear Participant (ex.: muitas
// INNs distintas podem explodir o número de chaves no Redis).
type StatsEvent struct {
	Participant string
	DocID       string
	Kind        ErrorKind
	StatusCode  int
	Waited      time.Duration
	At          time.Time
}

func (e StatsEvent) Succeeded() bool { return e.Kind == KindNone }

// StatsStore é a estratégia de persistência para estatísticas de envio.
//
// O cliente trata erro como best-effort (não altera o Result).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
