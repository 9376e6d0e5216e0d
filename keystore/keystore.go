// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package keystore loads TLS server credentials from PKCS12 keystores.
package keystore

import (
	"crypto/tls"
	"encoding/pem"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/crypto/pkcs12"
)

// ReadError is returned when the keystore file cannot be read.
type ReadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e ReadError) Error() string {
	return fmt.Sprintf("failed to read keystore %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e ReadError) Unwrap() error {
	return e.Cause
}

// DecodeError is returned when the keystore contents cannot be
// decoded with the given passphrase or do not form a valid key pair.
type DecodeError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode keystore %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e DecodeError) Unwrap() error {
	return e.Cause
}

// NoCertificateError is returned when the keystore holds no certificate
// or no private key.
type NoCertificateError struct {
	Path string
}

// Error implements the error interface.
func (e NoCertificateError) Error() string {
	return fmt.Sprintf("keystore does not contain a certificate and private key: %s", e.Path)
}

// Load reads the PKCS12 keystore at path and returns its certificate
// chain and private key.
func Load(fs afero.Fs, path, passphrase string) (tls.Certificate, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return tls.Certificate{}, ReadError{Path: path, Cause: err}
	}

	blocks, err := pkcs12.ToPEM(b, passphrase)
	if err != nil {
		return tls.Certificate{}, DecodeError{Path: path, Cause: err}
	}

	var certPEM, keyPEM []byte
	for _, block := range blocks {
		// ToPEM attaches bag attributes as headers which are of no use here.
		block = &pem.Block{Type: block.Type, Bytes: block.Bytes}

		switch block.Type {
		case "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case "PRIVATE KEY":
			keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
		}
	}
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return tls.Certificate{}, NoCertificateError{Path: path}
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, DecodeError{Path: path, Cause: err}
	}
	return cert, nil
}

// TLSConfig returns a server side *tls.Config serving the certificate
// found in the keystore at path.
func TLSConfig(fs afero.Fs, path, passphrase string) (*tls.Config, error) {
	cert, err := Load(fs, path, passphrase)
	if err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{"http/1.1"},
	}
	return cfg, nil
}
