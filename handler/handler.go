// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package handler provides ready made [web.Action]s.
package handler

import (
	"bytes"

	"github.com/meialau/sayori/pkg/health"
	"github.com/meialau/sayori/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics exposes everything gathered by g in the Prometheus text format.
func Metrics(g prometheus.Gatherer) web.Action {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)

	return func(req *web.Request, resp *web.Response) {
		mfs, err := g.Gather()
		if err != nil && len(mfs) == 0 {
			resp.SendStatus(web.StatusInternalServerError)
			resp.WriteContent(err.Error(), web.ContentTypeText)
			return
		}

		var buf bytes.Buffer
		enc := expfmt.NewEncoder(&buf, format)
		for _, mf := range mfs {
			err := enc.Encode(mf)
			if err != nil {
				resp.SendStatus(web.StatusInternalServerError)
				resp.WriteContent(err.Error(), web.ContentTypeText)
				return
			}
		}
		resp.WriteBytes(buf.Bytes(), string(format))
	}
}

// Health answers 200 OK while m is healthy and 503 Service Unavailable
// otherwise.
func Health(m health.Metric) web.Action {
	return func(req *web.Request, resp *web.Response) {
		if !m.Healthy(req.Context()) {
			resp.SendStatus(web.StatusServiceUnavailable)
			resp.WriteContent(web.StatusServiceUnavailable.Message, web.ContentTypeText)
			return
		}
		resp.WriteContent(web.StatusOK.Message, web.ContentTypeText)
	}
}
