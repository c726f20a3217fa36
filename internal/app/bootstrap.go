package app

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"go.uber.org/zap"
)

// SeedRooms makes sure every named room exists in the durable copy. A missing
// snapshot is created; an existing one only gains the rooms it lacks, its
// reservations are left alone. It returns how many rooms were added.
func SeedRooms(ctx context.Context, snapshots repository.Snapshotter, rooms []string, logger *zap.Logger) (int, error) {
	table, err := snapshots.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		logger.Info("No snapshot found, creating one")
		table = model.RoomTable{}
	case err != nil:
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	store := repository.NewReservationStore(table)
	added := 0
	for _, room := range rooms {
		if store.AddRoom(room) {
			added++
			logger.Info("Room added", zap.String("room", room))
		}
	}

	if added == 0 && err == nil {
		logger.Info("Snapshot already up to date", zap.Int("rooms", len(table)))
		return 0, nil
	}
	if err := snapshots.Flush(ctx, store.All()); err != nil {
		return 0, fmt.Errorf("flush snapshot: %w", err)
	}
	return added, nil
}

// GenerateSelfSignedCert writes a PEM certificate and key valid for hosts.
// Nothing is written when both files already exist; created reports whether
// new files were generated.
func GenerateSelfSignedCert(certPath, keyPath string, hosts []string, validFor time.Duration) (created bool, err error) {
	if fileExists(certPath) && fileExists(keyPath) {
		return false, nil
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return false, fmt.Errorf("generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return false, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"Unireserva"}, CommonName: "localhost"},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(validFor),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return false, fmt.Errorf("create certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return false, fmt.Errorf("marshal key: %w", err)
	}

	if err := writePEM(certPath, "CERTIFICATE", der, 0o644); err != nil {
		return false, err
	}
	if err := writePEM(keyPath, "EC PRIVATE KEY", keyDER, 0o600); err != nil {
		return false, err
	}
	return true, nil
}

func writePEM(path, blockType string, der []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
