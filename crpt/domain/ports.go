package domain

import "context"

// Limiter concede permissões de envio. Acquire bloqueia até haver uma
// permissão disponível; não existe resposta de "negado", apenas espera.
//
// O único erro possível vem do ctx (cancelamento ou deadline).
type Limiter interface {
	Acquire(ctx context.Context) error
}

// SlotPool representa um recurso com capacidade finita (ex: envios simultâneos).
//
// A semântica é: Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// Encoder converte o documento para o JSON de wire.
type Encoder interface {
	Encode(doc Document) ([]byte, error)
}

// Request é uma troca POST. Header contém apenas cabeçalhos extras; os fixos
// do contrato são responsabilidade do Transport.
type Request struct {
	URL    string
	Body   []byte
	Header map[string]string
}

type Response struct {
	StatusCode int
	Body       string
}

// Transport executa um POST e devolve status/corpo sem interpretar.
// Qualquer falha de I/O volta como *TransportError.
type Transport interface {
	Post(ctx context.Context, req Request) (Response, error)
}
