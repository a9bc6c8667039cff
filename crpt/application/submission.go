package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crpt-client/crpt/domain"

	"github.com/google/uuid"
)

// SubmissionService executa um envio completo: permissão, codificação, vaga,
// POST e classificação do desfecho.
type SubmissionService struct {
	Admission Admission
	Encoder   domain.Encoder
	Transport domain.Transport
	Endpoint  string

	// SignatureHeader, quando preenchido, envia a assinatura nesse cabeçalho.
	// Vazio mantém o contrato de wire padrão: a assinatura fica só no Result.
	SignatureHeader string
}

// Submit nunca entra em pânico e nunca devolve erro fora do Result.
func (s SubmissionService) Submit(ctx context.Context, doc domain.Document, signature string) (res domain.Result) {
	start := time.Now()
	res = domain.Result{
		ID:        uuid.NewString(),
		DocID:     doc.DocID,
		Signature: signature,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("submit %s: recovered panic: %v", res.ID, r)
		}
		res.Elapsed = time.Since(start)
	}()

	waited, err := s.Admission.Wait(ctx)
	res.Waited = waited
	if err != nil {
		res.Err = err
		return res
	}

	body, err := s.Encoder.Encode(doc)
	if err != nil {
		if !errors.Is(err, domain.ErrEncoding) {
			err = &domain.EncodingError{Err: err}
		}
		res.Err = err
		return res
	}

	release, err := s.Admission.Slot(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer release()

	req := domain.Request{URL: s.Endpoint, Body: body}
	if s.SignatureHeader != "" && signature != "" {
		req.Header = map[string]string{s.SignatureHeader: signature}
	}

	resp, err := s.Transport.Post(ctx, req)
	if err != nil {
		if !errors.Is(err, domain.ErrTransport) {
			err = &domain.TransportError{Err: err}
		}
		res.Err = err
		return res
	}

	res.StatusCode = resp.StatusCode
	res.Body = resp.Body
	if resp.StatusCode != domain.StatusOK {
		res.Err = &domain.HTTPStatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return res
}
