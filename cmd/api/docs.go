package main

// @title           Billing Dashboard API
// @version         1.0
// @description     API de clientes, faturas, pagamentos e painel de faturamento
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@billing.local

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
