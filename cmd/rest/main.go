package main

import (
	"context"
	"log"

	"travelorbit-be/internal/bootstrap"
	"travelorbit-be/internal/config"
	"travelorbit-be/internal/server"
	"travelorbit-be/internal/tracer"
	"travelorbit-be/pkg/database"

	"github.com/robfig/cron/v3"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Booking fan-out worker (confirmation email, PDF ticket, whatsapp)
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// Daily deal generation. The list endpoint also generates lazily, the
	// cron just warms the batch before the morning traffic.
	c := cron.New()
	if _, err := c.AddFunc(cfg.Deals.CronSchedule, func() {
		if err := container.DealService.GenerateDaily(context.Background()); err != nil {
			log.Printf("Cron: deal generation failed: %v", err)
		}
	}); err != nil {
		log.Printf("Cron: invalid deals schedule %q: %v", cfg.Deals.CronSchedule, err)
	}

	// Morning-after feedback request emails for trips that ended yesterday.
	if _, err := c.AddFunc(cfg.Feedback.CronSchedule, func() {
		if err := container.FeedbackService.SendRequestEmails(context.Background()); err != nil {
			log.Printf("Cron: feedback email batch failed: %v", err)
		}
	}); err != nil {
		log.Printf("Cron: invalid feedback schedule %q: %v", cfg.Feedback.CronSchedule, err)
	}

	c.Start()
	defer c.Stop()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
