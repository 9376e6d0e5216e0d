// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/meialau/sayori/keystore"

	"github.com/spf13/afero"
)

// ListenTCP listens on all interfaces at port. Port 0 picks a free port.
func ListenTCP(port uint) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf(":%d", port))
}

// ListenTLS is like [ListenTCP] but performs a TLS handshake on every
// accepted connection.
func ListenTLS(port uint, cfg *tls.Config) (net.Listener, error) {
	ls, err := ListenTCP(port)
	if err != nil {
		return nil, err
	}
	return tls.NewListener(ls, cfg), nil
}

// ListenKeystore is like [ListenTLS] with the certificate loaded from
// the PKCS12 keystore at path.
func ListenKeystore(fs afero.Fs, port uint, path, passphrase string) (net.Listener, error) {
	cfg, err := keystore.TLSConfig(fs, path, passphrase)
	if err != nil {
		return nil, err
	}
	return ListenTLS(port, cfg)
}
