// cmd/layout/main.go
package main

import (
	"log"

	"layout-service/internal/api/handlers"
	"layout-service/internal/api/responses"
	"layout-service/internal/config"
	"layout-service/internal/core/accounts"
	"layout-service/internal/core/layout"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()

	settings, err := config.Load()
	if err != nil {
		log.Fatal("Falha ao carregar a configuração: ", err)
	}

	layoutService := layout.NewService(settings, responses.Logger())
	layoutHandler := handlers.NewLayoutHandler(layoutService)

	accountsService := accounts.NewService(responses.Logger())
	accountsHandler := handlers.NewAccountsHandler(accountsService, settings.ResumoSheet)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/layout/options", layoutHandler.HandleOptions)
		apiV1.POST("/layout/dates", layoutHandler.HandleDates)
		apiV1.POST("/layout/validate", layoutHandler.HandleValidate)
		apiV1.POST("/layout/generate", layoutHandler.HandleGenerate)

		apiV1.POST("/accounts/analyze", accountsHandler.HandleAnalyzeSummary)
		apiV1.PUT("/accounts/cell", accountsHandler.HandleUpdateCell)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "layout-service"})
	})

	log.Printf("🚀 Layout Service (Go) iniciado e escutando na porta %s", settings.Port)
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de layout: ", err)
	}
}
