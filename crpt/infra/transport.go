package infra

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"crpt-client/crpt/domain"
	"crpt-client/logging"

	"github.com/go-resty/resty/v2"
)

// TrustPolicy define como o certificado do endpoint é validado.
type TrustPolicy string

const (
	// TrustSystem usa o trust store do sistema (padrão).
	TrustSystem TrustPolicy = "system"
	// TrustCustomCA usa apenas as CAs informadas (arquivo PEM ou pool).
	TrustCustomCA TrustPolicy = "custom"
	// TrustInsecure desliga a validação. Exige AllowInsecure.
	TrustInsecure TrustPolicy = "insecure"
)

var ErrInsecureNotAllowed = errors.New("insecure trust policy requires AllowInsecure")

const DefaultHTTPTimeout = 30 * time.Second

// Cabeçalhos fixos do contrato do endpoint.
var contractHeaders = map[string]string{
	"Connection":   "Keep-Alive",
	"Charset":      "UTF-8",
	"Content-Type": "application/json; charset=UTF-8",
	"Accept":       "application/json",
}

type TransportConfig struct {
	Timeout time.Duration

	Trust TrustPolicy
	// CAFile é um bundle PEM, usado com TrustCustomCA quando RootCAs é nil.
	CAFile  string
	RootCAs *x509.CertPool
	// AllowInsecure é o opt-in explícito para TrustInsecure.
	AllowInsecure bool
}

func (c TransportConfig) TLSConfig() (*tls.Config, error) {
	switch c.Trust {
	case "", TrustSystem:
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil

	case TrustCustomCA:
		pool := c.RootCAs
		if pool == nil {
			if c.CAFile == "" {
				return nil, errors.New("custom trust policy requires a CA file or pool")
			}
			pem, err := os.ReadFile(c.CAFile)
			if err != nil {
				return nil, fmt.Errorf("read CA file: %w", err)
			}
			pool = x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates found in %s", c.CAFile)
			}
		}
		return &tls.Config{MinVersion: tls.VersionTLS12, RootCAs: pool}, nil

	case TrustInsecure:
		if !c.AllowInsecure {
			return nil, ErrInsecureNotAllowed
		}
		return &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: true}, nil //nolint:gosec // opt-in explícito

	default:
		return nil, fmt.Errorf("unknown trust policy %q", c.Trust)
	}
}

// HTTPTransport executa o POST do documento com resty.
//
// Retries ficam desligados: cada Post é exatamente uma troca. O resty lê e
// fecha o corpo da resposta em todos os caminhos.
type HTTPTransport struct {
	client *resty.Client
}

func NewHTTPTransport(cfg TransportConfig) (*HTTPTransport, error) {
	tlsCfg, err := cfg.TLSConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Trust == TrustInsecure {
		logging.Warn("TLS certificate validation is DISABLED for the CRPT transport")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	client := resty.New()
	client.SetLogger(logging.RestyLogger{})
	client.
		SetTimeout(timeout).
		SetTLSClientConfig(tlsCfg).
		SetHeaders(contractHeaders).
		SetRetryCount(0)

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("crpt request: %s %s", req.Method, req.URL)
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("crpt response: %d (took %v)", resp.StatusCode(), resp.Time())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("crpt request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &HTTPTransport{client: client}, nil
}

// Post implementa domain.Transport. Status != 200 não é erro aqui e o corpo
// volta byte a byte como recebido.
func (t *HTTPTransport) Post(ctx context.Context, req domain.Request) (domain.Response, error) {
	r := t.client.R().
		SetContext(ctx).
		SetBody(req.Body)
	if len(req.Header) > 0 {
		r.SetHeaders(req.Header)
	}

	resp, err := r.Post(req.URL)
	if err != nil {
		return domain.Response{}, &domain.TransportError{Err: err}
	}
	return domain.Response{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}, nil
}
