package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

type TLSConfig struct {
	Enabled    bool
	SocketPath string
}

// Source owns the SPIRE X.509 source backing the server's mTLS config.
type Source struct {
	x509   *workloadapi.X509Source
	logger *zap.Logger
}

// Load returns a nil config and nil Source when TLS is disabled; callers then
// serve plain HTTP.
func Load(ctx context.Context, cfg TLSConfig, logger *zap.Logger) (*tls.Config, *Source, error) {
	if !cfg.Enabled {
		logger.Info("TLS is disabled")
		return nil, nil, nil
	}

	x509, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(cfg.SocketPath),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	tlsConfig := tlsconfig.MTLSServerConfig(x509, x509, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", cfg.SocketPath),
		zap.Bool("mtls_enabled", true))

	return tlsConfig, &Source{x509: x509, logger: logger}, nil
}

// Watch logs the current SVID every interval until ctx is done. SPIRE rotates
// certificates on its own; this only reports their state.
func (s *Source) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svid, err := s.x509.GetX509SVID()
			if err != nil {
				s.logger.Error("Failed to get X509 SVID", zap.Error(err))
				continue
			}
			s.logger.Info("Certificate status",
				zap.String("spiffe_id", svid.ID.String()),
				zap.Time("expiry", svid.Certificates[0].NotAfter),
				zap.Duration("ttl", time.Until(svid.Certificates[0].NotAfter)))
		}
	}
}

func (s *Source) Close() error {
	if s == nil || s.x509 == nil {
		return nil
	}
	return s.x509.Close()
}
