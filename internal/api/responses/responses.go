// internal/api/responses/responses.go
package responses

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// InitLogger inicializa o logger global da aplicação.
func InitLogger() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("Falha ao inicializar o logger: %v", err)
	}
}

// Logger devolve o logger global. Em testes, onde InitLogger não roda,
// devolve um logger descartável para não derrubar o chamador.
func Logger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// ErrorResponse é o corpo padrão de erro da API.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Error envia uma resposta de erro padronizada e registra o ocorrido.
func Error(c *gin.Context, status int, message string, details ...string) {
	Logger().Warn("requisição falhou",
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
		zap.String("error", message),
		zap.Strings("details", details),
	)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Details: details})
}
