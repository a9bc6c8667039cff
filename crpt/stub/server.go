package stub

import (
	"io"
	"net/http"
	"sync"
	"time"

	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"
	"crpt-client/logging"

	"github.com/gin-gonic/gin"
)

// CreatePath é o caminho do endpoint de criação no sistema real.
const CreatePath = "/api/v3/lk/documents/create"

// Received é um documento aceito pelo stub, com os cabeçalhos do pedido.
type Received struct {
	Document domain.Document
	Header   http.Header
	At       time.Time
}

type Server struct {
	codec *infra.JSONCodec

	mu          sync.Mutex
	received    []Received
	failStatus  int
	logRequests bool
}

type Option func(*Server)

// WithFailStatus força o status informado depois de decodificar o documento.
// 0 desliga.
func WithFailStatus(status int) Option {
	return func(s *Server) { s.failStatus = status }
}

// WithRequestLog registra cada pedido via logging.
func WithRequestLog(enabled bool) Option {
	return func(s *Server) { s.logRequests = enabled }
}

func New(opts ...Option) *Server {
	s := &Server{codec: infra.NewJSONCodec()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register monta a rota de criação num router gin existente.
func (s *Server) Register(r gin.IRoutes) {
	r.POST(CreatePath, s.create)
}

// Handler devolve um router gin pronto com a rota de criação.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	if s.logRequests {
		router.Use(requestLogger())
	}
	router.Use(gin.Recovery())
	s.Register(router)
	return router
}

// SetFailStatus troca o status forçado em tempo de execução.
func (s *Server) SetFailStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

func (s *Server) Received() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Received, len(s.received))
	copy(out, s.received)
	return out
}

func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func (s *Server) create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	doc, err := s.codec.Decode(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.received = append(s.received, Received{
		Document: doc,
		Header:   c.Request.Header.Clone(),
		At:       time.Now(),
	})
	fail := s.failStatus
	s.mu.Unlock()

	if fail != 0 {
		c.JSON(fail, gin.H{"error": "forced failure", "doc_id": doc.DocID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"value":    doc.DocID,
		"doc_type": doc.DocType,
		"products": len(doc.Products),
	})
}

func requestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logging.Info("%s %s %d %s (%s)",
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
		return ""
	})
}
