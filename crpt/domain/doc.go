// Package domain define o modelo do documento de introdução de mercadorias,
// a taxonomia de erros e os contratos (ports) usados pelo pipeline de envio.
//
// Este pacote não depende de net/http nem de implementações concretas.
// O modelo é composto por valores imutáveis: o pipeline apenas lê o documento.
package domain
