// cmd/web/main.go
package main

import (
	"log"
	"os"

	"github.com/LuisEduardoPedra/analiseRevendas/internal/api/handlers"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/api/responses"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/analysis"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/export"
	"github.com/LuisEduardoPedra/analiseRevendas/internal/core/parser"
	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()
	parserService := parser.NewService()
	analysisService := analysis.NewService()
	exportService := export.NewService()
	analysisHandler := handlers.NewAnalysisHandler(parserService, analysisService, exportService)

	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/analyze/crossbuyers", analysisHandler.HandleCrossBuyers)
		apiV1.POST("/analyze/export", analysisHandler.HandleExport)
		apiV1.POST("/analyze/atividade-setorial", analysisHandler.HandleAtividadeSetorial)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Servidor iniciado e escutando na porta %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor: ", err)
	}
}
