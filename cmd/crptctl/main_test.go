package main

import (
	"bytes"
	"context"
	"encoding/pem"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"
	"crpt-client/crpt/stub"
	"crpt-client/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.SetOutput(nil)
	code := m.Run()
	logging.RestoreOutput()
	os.Exit(code)
}

func TestSampleDocument_EncodesWithDemoValues(t *testing.T) {
	doc, err := sampleDocument()
	require.NoError(t, err)

	b, err := infra.NewJSONCodec().Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"doc_type":"LP_INTRODUCE_GOODS"`)
	assert.Contains(t, string(b), `"reg_date":"2020-01-23"`)
	assert.Contains(t, string(b), `"importRequest":true`)
}

func TestSampleCommand_PrintsWireJSON(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"sample"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `"participantInn": "string"`)
}

type countingSubmitter struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	calls    atomic.Int64
	failEach int64
}

func (s *countingSubmitter) Submit(ctx context.Context, doc domain.Document, signature string) domain.Result {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	s.mu.Unlock()

	time.Sleep(time.Millisecond)
	n := s.calls.Add(1)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	if s.failEach > 0 && n%s.failEach == 0 {
		return domain.Result{DocID: doc.DocID, StatusCode: 500, Err: &domain.HTTPStatusError{StatusCode: 500}}
	}
	return domain.Result{DocID: doc.DocID, StatusCode: 200}
}

func TestRunLoad_FixedWorkerPool(t *testing.T) {
	sub := &countingSubmitter{failEach: 5}
	stats := infra.NewMemoryStatsStore()

	rep := runLoad(context.Background(), sub, stats, domain.Document{DocID: "d"}, "sig", 3, 5)

	assert.Equal(t, int64(15), sub.calls.Load())
	assert.LessOrEqual(t, sub.maxSeen, 3)
	assert.Equal(t, int64(15), rep.Counters.Total())
	assert.Equal(t, int64(3), rep.Counters.Failed)
	assert.Equal(t, int64(3), rep.ByKind[domain.KindHTTPStatus])
}

func TestRunLoad_StopsProducingWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sub := &countingSubmitter{}

	rep := runLoad(ctx, sub, infra.NewMemoryStatsStore(), domain.Document{DocID: "d"}, "sig", 3, 5)

	assert.Equal(t, int64(0), sub.calls.Load())
	assert.Equal(t, int64(0), rep.Counters.Total())
}

type cancelingSubmitter struct {
	countingSubmitter
	cancel func()
	after  int64
}

func (s *cancelingSubmitter) Submit(ctx context.Context, doc domain.Document, signature string) domain.Result {
	res := s.countingSubmitter.Submit(ctx, doc, signature)
	if s.calls.Load() == s.after {
		s.cancel()
	}
	return res
}

func TestRunLoad_InterruptedMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := &cancelingSubmitter{cancel: cancel, after: 2}

	rep := runLoad(ctx, sub, infra.NewMemoryStatsStore(), domain.Document{DocID: "d"}, "sig", 1, 10)

	// com um worker, no máximo o envio já entregue ao canal ainda roda
	assert.LessOrEqual(t, sub.calls.Load(), int64(3))
	assert.Less(t, rep.Counters.Total(), int64(10))
}

func TestSubmitCommand_AgainstStub(t *testing.T) {
	s := stub.New()
	srv := httptest.NewTLSServer(s.Handler())
	defer srv.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(caFile,
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}), 0o600))

	for _, k := range []string{"SUBMIT_STATS_ENABLED", "LIMITER_BACKEND", "LOG_LEVEL", "RATE_TIME_UNIT", "RATE_REQUEST_LIMIT"} {
		t.Setenv(k, "")
	}
	t.Setenv("TRUST_POLICY", "custom")
	t.Setenv("TRUST_CA_FILE", caFile)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"submit", "--endpoint", srv.URL + stub.CreatePath, "--signature", "sig"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "status:  200")
	assert.Equal(t, 1, s.Count())
}

func TestLoadCommand_RejectsInvalidFlags(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"load", "--workers", "0", "--endpoint", "https://localhost:1/create"})

	err := root.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "--workers"))
}
