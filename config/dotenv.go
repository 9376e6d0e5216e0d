// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"github.com/meialau/sayori/internal/try"

	"github.com/joho/godotenv"
)

// DotEnv is a Source which reads a .env formatted document.
type DotEnv struct {
	r      io.Reader
	prefix string
}

// FromDotEnv returns a Source which parses KEY=value lines from r.
// [EnvPrefix] has the same meaning as it does for [FromEnv].
func FromDotEnv(r io.Reader, opts ...EnvOption) DotEnv {
	eo := &envOptions{}
	for _, opt := range opts {
		opt(eo)
	}
	return DotEnv{r: r, prefix: eo.prefix}
}

// InvalidDotEnvError is returned when the .env document cannot be parsed.
type InvalidDotEnvError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidDotEnvError) Error() string {
	return fmt.Sprintf("invalid dotenv: %s", e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e InvalidDotEnvError) Unwrap() error {
	return e.Cause
}

// Apply implements the Source interface.
func (src DotEnv) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	vars, err := godotenv.Parse(src.r)
	if err != nil {
		return InvalidDotEnvError{Cause: err}
	}
	return applyVars(store, vars, src.prefix)
}
