// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinary_Toggle(t *testing.T) {
	t.Run("will make it healthy", func(t *testing.T) {
		t.Run("if the current state is the zero value", func(t *testing.T) {
			var m Binary
			m.Toggle()
			assert.True(t, m.Healthy(context.Background()))
		})
	})

	t.Run("will make it unhealthy", func(t *testing.T) {
		t.Run("if the current state is healthy", func(t *testing.T) {
			var m Binary
			m.Set(true)
			m.Toggle()
			assert.False(t, m.Healthy(context.Background()))
		})
	})
}

type healthyMetric bool

func (m healthyMetric) Healthy(_ context.Context) bool {
	return bool(m)
}

func TestAnd(t *testing.T) {
	testCases := []struct {
		Name    string
		Metrics []Metric
		Healthy bool
	}{
		{
			Name:    "will be healthy if there are no metrics",
			Healthy: true,
		},
		{
			Name:    "will be healthy if all metrics are healthy",
			Metrics: []Metric{healthyMetric(true), healthyMetric(true)},
			Healthy: true,
		},
		{
			Name:    "will be unhealthy if any metric is unhealthy",
			Metrics: []Metric{healthyMetric(true), healthyMetric(false)},
			Healthy: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert.Equal(t, testCase.Healthy, And(testCase.Metrics...).Healthy(context.Background()))
		})
	}
}
