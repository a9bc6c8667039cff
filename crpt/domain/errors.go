package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinelas para errors.Is. Cada tipo concreto abaixo responde Is para a sua.
var (
	ErrDateFormat = errors.New("invalid date format")
	ErrEncoding   = errors.New("document encoding failed")
	ErrTransport  = errors.New("transport failure")
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrAdmission indica que a permissão do rate limit (ou a vaga de envio)
	// não foi obtida porque o contexto encerrou antes.
	ErrAdmission = errors.New("admission aborted")
)

// DateFormatError: a string de data não está em yyyy-MM-dd.
type DateFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid date %q: expected yyyy-MM-dd", e.Value)
	}
	return fmt.Sprintf("invalid date %q for %s: expected yyyy-MM-dd", e.Value, e.Field)
}

func (e *DateFormatError) Unwrap() error        { return e.Err }
func (e *DateFormatError) Is(target error) bool { return target == ErrDateFormat }

// EncodingError: o documento não pôde ser serializado.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string        { return fmt.Sprintf("encode document: %v", e.Err) }
func (e *EncodingError) Unwrap() error        { return e.Err }
func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// TransportError agrupa falhas de conexão, escrita, leitura e URL inválida.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string        { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError: o endpoint respondeu com status diferente de 200.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("endpoint answered with status %d", e.StatusCode)
	}
	return fmt.Sprintf("endpoint answered with status %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// ErrorKind é a classificação estável de uma falha de envio (logs, estatísticas).
type ErrorKind string

const (
	KindNone       ErrorKind = "none"
	KindAdmission  ErrorKind = "admission"
	KindEncoding   ErrorKind = "encoding"
	KindTransport  ErrorKind = "transport"
	KindHTTPStatus ErrorKind = "http_status"
	KindUnknown    ErrorKind = "unknown"
)

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAdmission):
		return KindAdmission
	case errors.Is(err, ErrEncoding):
		return KindEncoding
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindAdmission
	default:
		return KindUnknown
	}
}
