package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schedsim/schedsim/sim"
)

// NewApp builds the fiber application with every scheduling route registered.
func NewApp(config sim.Config) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler := NewSchedulerHandlerImpl(config)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Get("/health", handler.Health)
	}
	return app
}
