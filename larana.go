//go:build !cli
// +build !cli

package main

import (
	"fmt"
	"log"

	"github.com/common-nighthawk/go-figure"
	"go.uber.org/zap"

	"larana.GO/app"
	"larana.GO/config"
)

func main() {
	config.LoadEnv()

	a, err := app.New()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()
	e := a.Echo()

	figure.NewFigure("Larana", "slant", true).Print()
	fmt.Println("Catalog back-office API")

	a.Log.Info("server running", zap.String("port", a.Config.Port))
	e.Logger.Fatal(e.Start(":" + a.Config.Port))
}
