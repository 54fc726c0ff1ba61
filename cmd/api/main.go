// The api command runs the HTTP API server.
package main

import (
	"go.uber.org/fx"

	"github.com/recipewhirl/backend/internal/infrastructure/container"
)

func main() {
	fx.New(container.Module).Run()
}
