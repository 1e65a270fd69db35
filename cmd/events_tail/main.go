package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sermon-advisor-be/internal/config"
	"sermon-advisor-be/pkg/events"
	pktNats "sermon-advisor-be/pkg/nats"
)

// Tails the advisor event stream. Useful for checking that ingestion actually
// publishes TEACHING_* events.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "events-tail", func(_ context.Context, event events.Event) error {
		log.Printf("[%s] %v", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Println("Tailing events, Ctrl+C to stop...")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
