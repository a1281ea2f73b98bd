package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hdr13/ecommerce-api/internal/config"
	"github.com/hdr13/ecommerce-api/internal/es"
	"github.com/hdr13/ecommerce-api/internal/handlers"
	"github.com/hdr13/ecommerce-api/internal/logging"
	"github.com/hdr13/ecommerce-api/internal/mykafka"
	"github.com/hdr13/ecommerce-api/internal/transport"
	httpserver "github.com/hdr13/ecommerce-api/internal/transport/http"
	loggingmw "github.com/hdr13/ecommerce-api/pkg/middleware/logging"
)

const productIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	brokers := []string{configuration.KAFKA_ADDRESS}
	topics := []string{"user_events", "product_events", "order_events"}
	prod, err := mykafka.NewProducer(brokers, topics)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))
	e.Validator = transport.NewValidator()

	deps := httpserver.Deps{
		DB:             db,
		UserHandler:    &handlers.UserHandler{DB: db, Producer: prod},
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient, Index: productIndex},
		OrderHandler:   &handlers.OrderHandler{DB: db, Producer: prod},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: productIndex},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
