package infra

import (
	"context"

	"crpt-client/crpt/domain"
)

// chanPool limita quantos envios ficam em voo ao mesmo tempo.
type chanPool struct {
	sem chan struct{}
}

// NewChanPool cria um semáforo baseado em channel com capacidade max.
// Com max <= 0 retorna nil: sem limite de envios simultâneos.
func NewChanPool(max int) domain.SlotPool {
	if max <= 0 {
		return nil
	}
	return &chanPool{sem: make(chan struct{}, max)}
}

func (p *chanPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.sem <- struct{}{}:
		return func() { <-p.sem }, true
	case <-ctx.Done():
		return nil, false
	}
}

func (p *chanPool) InUse() int { return len(p.sem) }
