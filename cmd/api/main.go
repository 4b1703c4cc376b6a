package main

import (
	"context"
	"log"

	"github.com/vibecart/scm-service/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("scm api exited: %v", err)
	}
}
