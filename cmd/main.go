package main

import (
	"log"

	_ "github.com/YuniorRivera/remesas-haiti-connect-sub000/docs"
	"github.com/YuniorRivera/remesas-haiti-connect-sub000/internal/app"
)

// @title           Remesas RD-HT Transaction Engine
// @version         1.0
// @description     Motor de transacciones para remesas República Dominicana → Haití: cotización, ciclo de vida, contabilidad de doble partida y controles de riesgo

// @contact.name   Soporte de plataforma
// @contact.email  soporte@remesas-haiti-connect.do

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("Error creando la aplicación: %v", err)
	}

	app.BuildQuoteLayer()
	app.BuildRiskLayer()

	if err := app.BuildRemittanceLayer(); err != nil {
		log.Fatalf("Error construyendo la capa de remesas: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Error durante la ejecución de la aplicación: %v", err)
	}
}
