// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"
)

// certMetric is healthy until the serving certificate expires.
type certMetric struct {
	notAfter time.Time
	now      func() time.Time
}

func newCertMetric(cert tls.Certificate) (*certMetric, error) {
	if len(cert.Certificate) == 0 {
		return nil, fmt.Errorf("tls certificate chain is empty")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse tls certificate: %w", err)
	}
	return &certMetric{notAfter: leaf.NotAfter, now: time.Now}, nil
}

// Healthy implements the health.Metric interface.
func (m *certMetric) Healthy(ctx context.Context) bool {
	return m.now().Before(m.notAfter)
}
