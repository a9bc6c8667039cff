// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - TokenBucket: rate limit contínuo protegido por mutex (padrão)
//   - RateLimiter: backend alternativo usando golang.org/x/time/rate
//   - ChanPool: semáforo simples para limitar envios simultâneos
//   - JSONCodec: JSON de wire do documento
//   - HTTPTransport: POST HTTPS via resty com política de confiança TLS explícita
//   - MemoryStatsStore / RedisStatsStore: contadores de desfecho dos envios
package infra
