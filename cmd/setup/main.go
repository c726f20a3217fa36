// Command setup prepares a fresh deployment: it seeds the room list through
// the configured snapshot driver and can generate a self-signed certificate.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/app"
	"github.com/MauroGomes09/Unireserva/internal/config"
	"go.uber.org/zap"
)

func main() {
	rooms := flag.String("rooms", "", "comma separated room names to seed, e.g. A101,A102")
	certFile := flag.String("cert", "", "write a self-signed certificate to this path")
	keyFile := flag.String("key", "", "write the certificate's private key to this path")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma separated certificate hosts")
	validFor := flag.Duration("valid-for", 365*24*time.Hour, "certificate lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	if *certFile != "" || *keyFile != "" {
		if *certFile == "" || *keyFile == "" {
			logger.Fatal("-cert and -key must be given together")
		}
		created, err := app.GenerateSelfSignedCert(*certFile, *keyFile, splitList(*hosts), *validFor)
		if err != nil {
			logger.Fatal("Failed to generate certificate", zap.Error(err))
		}
		if created {
			logger.Info("Certificate generated", zap.String("cert", *certFile), zap.String("key", *keyFile))
		} else {
			logger.Info("Certificate already present, skipping", zap.String("cert", *certFile))
		}
	}

	snapshots, closeSnapshots, err := app.OpenSnapshotter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open snapshot storage", zap.Error(err))
	}
	defer closeSnapshots()

	added, err := app.SeedRooms(ctx, snapshots, splitList(*rooms), logger)
	if err != nil {
		logger.Fatal("Failed to seed rooms", zap.Error(err))
	}
	logger.Info("Setup complete", zap.Int("rooms_added", added))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
