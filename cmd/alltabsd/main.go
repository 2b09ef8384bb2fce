package main

import (
	"log"

	"github.com/alltabs/alltabsd/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ alltabsd failed to start: %v", err)
	}
}
