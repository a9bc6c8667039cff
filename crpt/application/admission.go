package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crpt-client/crpt/domain"
)

var errNoSlot = errors.New("no submission slot available")

// Admission concentra a espera pelo rate limit e pela vaga de envio,
// sem saber nada sobre HTTP.
type Admission struct {
	Limiter domain.Limiter
	Pool    domain.SlotPool
	// AcquireTimeout limita cada espera (limiter e vaga). <= 0 espera até o ctx encerrar.
	AcquireTimeout time.Duration
}

func (a Admission) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.AcquireTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.AcquireTimeout)
}

// Wait bloqueia até o limiter conceder uma permissão e devolve o tempo esperado.
// A permissão consumida nunca é devolvida, mesmo se o envio falhar depois.
func (a Admission) Wait(ctx context.Context) (time.Duration, error) {
	if a.Limiter == nil {
		return 0, nil
	}

	acqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := a.Limiter.Acquire(acqCtx)
	waited := time.Since(start)
	if err != nil {
		return waited, fmt.Errorf("%w: %w", domain.ErrAdmission, err)
	}
	return waited, nil
}

// Slot adquire uma vaga de envio simultâneo. Sem Pool, não há limite.
// O release devolvido deve ser chamado exatamente uma vez.
func (a Admission) Slot(ctx context.Context) (func(), error) {
	if a.Pool == nil {
		return func() {}, nil
	}

	acqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	release, ok := a.Pool.Acquire(acqCtx)
	if !ok {
		cause := acqCtx.Err()
		if cause == nil {
			cause = errNoSlot
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAdmission, cause)
	}
	return release, nil
}
