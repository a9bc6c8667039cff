// Command crptctl envia documentos de introdução de mercadorias pelo cliente
// com rate limit, e serve de demonstração de carga concorrente.
//
// A configuração vem do ambiente (ver pacote config); flags globais
// sobrescrevem as variáveis correspondentes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crpt-client/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.Error("%v", err)
		cancel()
		os.Exit(1)
	}
}
