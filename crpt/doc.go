// Package crpt expõe o cliente de envio de documentos de introdução de
// mercadorias (LP_INTRODUCE_GOODS) para o endpoint de criação de documentos.
//
// O cliente é seguro para uso concorrente e garante que, somando todas as
// goroutines, no máximo requestLimit pedidos saem a cada timeUnit.
//
//	client, err := crpt.New(time.Second, 5)
//	res := client.Submit(ctx, doc, signature)
//	if !res.OK() { ... res.Kind() ... }
package crpt
