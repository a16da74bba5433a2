package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/tracker/internal/api"
	"example.com/tracker/internal/config"
	"example.com/tracker/internal/domain"
	"example.com/tracker/internal/events"
	"example.com/tracker/internal/persistence/mongodb"
	httptransport "example.com/tracker/internal/transport/http"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.MongoURI).SetTimeout(cfg.MongoTimeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), cfg.MongoTimeout)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Printf("mongodb disconnect failed: %v", err)
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatalf("mongodb unreachable: %v", err)
	}

	repo := mongodb.NewRepository(client.Database(cfg.MongoDatabase))
	if err := repo.EnsureIndexes(pingCtx); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	serviceOpts := []domain.Option{}
	if cfg.EventsEnabled() {
		publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
		defer publisher.Close()
		serviceOpts = append(serviceOpts, domain.WithPublisher(publisher))
	}

	service := domain.NewService(repo, repo, serviceOpts...)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	chain := api.RequestID(api.AccessLog(log.Default())(api.CORS(mux)))
	server := httptransport.NewServer(cfg, chain)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("exercise tracker listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
