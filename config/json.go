// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/meialau/sayori/internal/try"
)

// Json is a Source which reads a JSON object.
type Json struct {
	r io.Reader
}

// FromJson returns a Source which decodes a JSON object from r.
// If r is also an io.Closer it will be closed once read.
func FromJson(r io.Reader) Json {
	return Json{r: r}
}

// InvalidJsonError is returned when the JSON document cannot be decoded.
type InvalidJsonError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.Cause
}

// Apply implements the Source interface.
func (src Json) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	m := make(map[string]any)
	err = json.NewDecoder(src.r).Decode(&m)
	if err != nil {
		return InvalidJsonError{Cause: err}
	}
	return Map(m).Apply(store)
}
