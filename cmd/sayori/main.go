// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command sayori serves a directory of static files over HTTP or HTTPS.
package main

import (
	"context"
	"os"

	"github.com/meialau/sayori/cmd/sayori/internal/command"
)

func main() {
	err := command.New().ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
