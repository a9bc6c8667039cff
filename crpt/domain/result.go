package domain

import "time"

// StatusOK é o único status considerado sucesso pelo endpoint.
const StatusOK = 200

// Result é o desfecho de um envio. É criado por chamada e nunca compartilhado.
//
// Sucesso: Err == nil e StatusCode == 200, Body com a resposta.
// Falha: Err preenchido (ver KindOf); StatusCode fica 0 quando não houve resposta.
type Result struct {
	// ID correlaciona o envio nos logs e nas estatísticas.
	ID    string
	DocID string
	// Signature é apenas metadado; por padrão não vai para o wire.
	Signature  string
	StatusCode int
	Body       string
	Err        error

	Waited  time.Duration // tempo bloqueado no rate limit
	Elapsed time.Duration // tempo total da chamada
}

func (r Result) OK() bool { return r.Err == nil && r.StatusCode == StatusOK }

func (r Result) Kind() ErrorKind { return KindOf(r.Err) }
