package infra

import (
	"errors"
	"log/slog"

	"court-grid/internal/pkg/errs"
)

type GatewayErrorKind string

type GatewayError struct {
	Kind   GatewayErrorKind
	Status int
	msg    string
	err    error // wrapped low-level error
}

func (e GatewayError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e GatewayError) Unwrap() error {
	return e.err
}

func WrapGatewayErr(slogger *slog.Logger, kind GatewayErrorKind, status int, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if status != 0 {
		logArgs = append(logArgs, slog.Int("status", status))
	}

	slogger.Error("Gateway error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return GatewayError{Kind: kind, Status: status, msg: msg, err: err}
}

func IsKind(err error, kind GatewayErrorKind) bool {
	var e GatewayError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindForStatus classifies a non-2xx HTTP status.
func KindForStatus(status int) GatewayErrorKind {
	switch {
	case status == 404:
		return KindNotFound
	case status == 408 || status == 504:
		return KindTimeout
	case status >= 500:
		return KindServer
	default:
		return KindRejected
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound  GatewayErrorKind = "NOT_FOUND"
	KindRejected  GatewayErrorKind = "REJECTED"
	KindTimeout   GatewayErrorKind = "TIMEOUT"
	KindTransport GatewayErrorKind = "TRANSPORT"
	KindServer    GatewayErrorKind = "SERVER"
	KindDecode    GatewayErrorKind = "DECODE"
)
