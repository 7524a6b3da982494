package main

import (
	"os"

	"github.com/storeldb/storeapi/internal/cli"
)

// @title Store API
// @version 1.0
// @description Clients, products, orders, sales reports and spreadsheet exports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
