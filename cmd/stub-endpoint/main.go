// Command stub-endpoint sobe localmente o endpoint de criação de documentos
// para exercitar o cliente sem acessar o sistema real.
//
// Variáveis: LISTEN_ADDR (padrão :8443), STUB_FAIL_STATUS (força um status),
// STUB_TLS_CERT/STUB_TLS_KEY (HTTPS; sem eles sobe em HTTP), LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"crpt-client/crpt/stub"
	"crpt-client/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	logging.SetLevel(getenvDefault("LOG_LEVEL", "INFO"))

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
	gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")

	failStatus := getenvIntDefault("STUB_FAIL_STATUS", 0)
	s := stub.New(stub.WithFailStatus(failStatus), stub.WithRequestLog(true))

	addr := getenvDefault("LISTEN_ADDR", ":8443")
	certFile := os.Getenv("STUB_TLS_CERT")
	keyFile := os.Getenv("STUB_TLS_KEY")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("stub endpoint listening on %s%s (tls=%v, failStatus=%d)", addr, stub.CreatePath, certFile != "", failStatus)

	var err error
	if certFile != "" && keyFile != "" {
		err = srv.ListenAndServeTLS(certFile, keyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("server error: %v", err)
		os.Exit(1)
	}
	logging.Info("stub endpoint stopped after %d documents", s.Count())
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
