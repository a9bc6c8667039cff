// Package application contém o caso de uso de envio de documentos.
//
// Ele depende apenas do pacote domain e não conhece net/http nem resty.
// Ex.: SubmissionService.Submit(ctx, doc, signature) sempre devolve um Result.
package application
