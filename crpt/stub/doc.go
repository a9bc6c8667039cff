// Package stub implementa localmente o endpoint de criação de documentos
// (POST /api/v3/lk/documents/create) com gin.
//
// É usado pelos testes de ponta a ponta e pelo binário stub-endpoint para
// exercitar o cliente sem acessar o sistema real.
package stub
