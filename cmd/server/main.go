package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Brownie44l1/digit-api/internal/config"
	"github.com/Brownie44l1/digit-api/internal/handlers"
	"github.com/Brownie44l1/digit-api/internal/model"
	"github.com/Brownie44l1/digit-api/internal/preprocess"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	metadata, err := model.LoadMetadata(cfg.MetadataPath)
	if err != nil {
		log.Fatalf("Failed to load model metadata: %v", err)
	}

	log.Printf("Loading model from: %s", cfg.ModelPath)

	modelServer := model.NewServer(model.Options{
		ModelPath:         cfg.ModelPath,
		SharedLibraryPath: cfg.SharedLibraryPath,
		Metadata:          metadata,
	})
	if err := modelServer.Load(); err != nil {
		log.Fatalf("Failed to initialize model server: %v", err)
	}
	defer modelServer.Unload()

	pipeline, err := preprocess.NewPipeline(cfg.Interpolation)
	if err != nil {
		log.Fatalf("Failed to build preprocessing pipeline: %v", err)
	}

	handler := handlers.NewHandler(modelServer, pipeline, cfg.MaxUploadBytes, cfg.Debug)
	mux := http.NewServeMux()
	handler.Routes(mux)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Classes: %v", modelServer.Metadata.Classes)
	log.Printf("Interpolation: %s", cfg.Interpolation)
	log.Println("Endpoints:")
	log.Println("  GET  /health        - Health check")
	log.Println("  POST /predict       - Raw 784-value tensor prediction")
	log.Println("  POST /predict/image - Predict from a canvas snapshot")
	log.Println("  POST /preprocess    - Preview the model input as PNG")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server failed: %v", err)
	}
}
