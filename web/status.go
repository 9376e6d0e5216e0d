// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

// Status pairs a status code with its reason phrase.
type Status struct {
	Code    int
	Message string
}

var (
	StatusContinue            = Status{100, "Continue"}
	StatusSwitchingProtocol   = Status{101, "Switching Protocol"}
	StatusCheckpoints         = Status{103, "Checkpoints"}
	StatusOK                  = Status{200, "OK"}
	StatusCreated             = Status{201, "Created"}
	StatusAccepted            = Status{202, "Accepted"}
	StatusResetContent        = Status{205, "Reset Content"}
	StatusPartialContent      = Status{206, "Partial Content"}
	StatusMovedPermanently    = Status{301, "Moved Permanently"}
	StatusFound               = Status{302, "Found"}
	StatusNotModified         = Status{304, "Not Modified"}
	StatusUseProxy            = Status{305, "Use Proxy"}
	StatusTemporaryRedirect   = Status{307, "Temporary Redirect"}
	StatusBadRequest          = Status{400, "Bad Request"}
	StatusUnauthorized        = Status{401, "Unauthorized"}
	StatusForbidden           = Status{403, "Forbidden"}
	StatusNotFound            = Status{404, "Not Found"}
	StatusRequestTimeout      = Status{408, "Request Timeout"}
	StatusGone                = Status{410, "Gone"}
	StatusTooManyRequests     = Status{429, "Too Many Requests"}
	StatusInternalServerError = Status{500, "Internal Server Error"}
	StatusBadGateway          = Status{502, "Bad Gateway"}
	StatusServiceUnavailable  = Status{503, "Service Unavailable"}
	StatusGatewayTimeout      = Status{504, "Gateway Timeout"}
)
