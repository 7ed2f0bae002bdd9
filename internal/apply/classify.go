package apply

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Reason classifies a failed mutation for the report and for follow-up
// decisions.
type Reason string

const (
	ReasonQuota       Reason = "quota"
	ReasonAuth        Reason = "auth"
	ReasonAPIError    Reason = "api_error"
	ReasonServerError Reason = "server_error"
	ReasonTimeout     Reason = "timeout"
	ReasonNetwork     Reason = "network"
)

// statusCoder is implemented by remote errors that carry an HTTP status.
// The client package's APIError satisfies it; keeping it an interface here
// keeps the executor free of transport imports.
type statusCoder interface {
	HTTPStatus() int
}

// Classify maps a mutation error to a failure reason. Quota detection looks
// at both the 429 status and the message text, some gateways report quota
// exhaustion with a 400.
func Classify(err error) Reason {
	if err == nil {
		return ""
	}

	if strings.Contains(strings.ToLower(err.Error()), "quota") {
		return ReasonQuota
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatus()
		switch {
		case status == http.StatusTooManyRequests:
			return ReasonQuota
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return ReasonAuth
		case status >= 500:
			return ReasonServerError
		default:
			// Anything else carrying an HTTP status is a remote-reported
			// failure, including success=false on a 200.
			return ReasonAPIError
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}

	return ReasonNetwork
}
