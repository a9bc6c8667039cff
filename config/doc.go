// Package config lê a configuração do cliente a partir de variáveis de
// ambiente e a valida com go-playground/validator.
//
// Valores que não podem ser interpretados caem no padrão; valores
// interpretáveis porém fora de faixa falham em Validate citando a variável.
package config
