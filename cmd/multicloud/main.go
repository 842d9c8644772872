package main

import (
	"os"

	"multicloud/internal/logger"

	// Explicitly import provider implementations to ensure their init() functions run and they register themselves
	_ "multicloud/internal/provider"
)

func main() {
	log, level := logger.NewLogger()

	app, err := newApp(log, level)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	Execute(app)
}
