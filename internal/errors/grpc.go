package errors

import (
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ClassifyGRPCError converts an error returned while dialing or probing a
// server into a UIError. Non-status errors fall back to ClassifyError.
func ClassifyGRPCError(err error) *UIError {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return ClassifyError(err)
	}

	details := fmt.Sprintf("gRPC: %s - %s", st.Code(), st.Message())
	if extra := formatStatusDetails(st); extra != "" {
		details += "\n\n" + extra
	}

	switch st.Code() {
	case codes.Unavailable:
		if isHandshakeFailure(st.Message()) {
			return &UIError{
				Err:      err,
				Severity: SeverityError,
				Title:    "SSL Handshake Failed",
				Message:  "The secure connection could not be established.",
				Recovery: []string{
					"Check the CA file matches the server certificate",
					"Check the PEM certificate/key and passphrase",
					"Allow invalid hostnames if the certificate names another host",
				},
				Actions: []ErrorAction{{Label: "Edit Connection"}},
				Details: details,
			}
		}
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Cannot Connect to Server",
			Message:  "The server is not responding.",
			Recovery: []string{
				"Check that the server is running",
				"Verify the address and port",
				"Check whether the server requires SSL",
			},
			Actions: []ErrorAction{{Label: "Retry"}, {Label: "Edit Connection"}},
			Details: details,
		}

	case codes.DeadlineExceeded:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Timeout",
			Message:  "The server took too long to respond.",
			Recovery: []string{"Try again", "Increase the connection timeout"},
			Actions:  []ErrorAction{{Label: "Retry"}, {Label: "Edit Connection"}},
			Details:  details,
		}

	case codes.Unauthenticated:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Authentication Required",
			Message:  "The server rejected the client credentials.",
			Recovery: []string{"Configure a PEM client certificate in the SSL tab"},
			Actions:  []ErrorAction{{Label: "Edit Connection"}},
			Details:  details,
		}

	case codes.PermissionDenied:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Access Denied",
			Message:  "The client certificate is not allowed to connect.",
			Recovery: []string{"Contact the server administrator"},
			Details:  details,
		}

	case codes.Unimplemented:
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "Test Not Supported",
			Message:  "The server does not support connection tests.",
			Recovery: []string{"The connection itself may still work"},
			Details:  details,
		}

	case codes.Canceled:
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Connection Cancelled",
			Message:  "The operation was cancelled.",
			Recovery: []string{},
			Details:  details,
		}

	default:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Test Failed",
			Message:  st.Message(),
			Recovery: []string{"Try again"},
			Actions:  []ErrorAction{{Label: "Retry"}},
			Details:  details,
		}
	}
}

// isHandshakeFailure reports whether an Unavailable message came from the TLS layer.
func isHandshakeFailure(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{"tls:", "x509:", "authentication handshake failed", "certificate"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// formatStatusDetails extracts and formats rich error details from a gRPC status.
func formatStatusDetails(st *status.Status) string {
	details := st.Details()
	if len(details) == 0 {
		return ""
	}

	var sections []string
	for _, detail := range details {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			lines := []string{fmt.Sprintf("Error Info: %s", d.GetReason())}
			if d.GetDomain() != "" {
				lines = append(lines, fmt.Sprintf("  Domain: %s", d.GetDomain()))
			}
			for k, v := range d.GetMetadata() {
				lines = append(lines, fmt.Sprintf("  %s: %s", k, v))
			}
			sections = append(sections, strings.Join(lines, "\n"))

		case *errdetails.DebugInfo:
			lines := []string{"Debug Info:"}
			if d.GetDetail() != "" {
				lines = append(lines, "  "+d.GetDetail())
			}
			for _, entry := range d.GetStackEntries() {
				lines = append(lines, "  "+entry)
			}
			sections = append(sections, strings.Join(lines, "\n"))

		case *errdetails.RetryInfo:
			if delay := d.GetRetryDelay(); delay != nil {
				sections = append(sections, fmt.Sprintf("Retry after: %v", delay.AsDuration()))
			}

		case *errdetails.Help:
			if links := d.GetLinks(); len(links) > 0 {
				lines := []string{"Help:"}
				for _, link := range links {
					lines = append(lines, fmt.Sprintf("  %s: %s", link.GetDescription(), link.GetUrl()))
				}
				sections = append(sections, strings.Join(lines, "\n"))
			}

		default:
			sections = append(sections, fmt.Sprintf("Detail: %v", detail))
		}
	}

	return strings.Join(sections, "\n\n")
}
