// Standalone public catalog GraphQL server, run with: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	graphqlApi "larana.GO/api/graphql"
	"larana.GO/app"
	"larana.GO/config"
)

func main() {
	config.LoadEnv()

	a, err := app.New()
	if err != nil {
		log.Fatal("startup: ", err)
	}
	defer a.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	graphqlApi.RegisterGraphQLRoutes(e, a.Deps)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "doom", "larry3d", "puffy"}
	figure.NewFigure("Larana GQL", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println("Standalone catalog GraphQL server")

	port := a.Config.Port
	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", port, port)
	e.Logger.Fatal(e.Start(":" + port))
}
