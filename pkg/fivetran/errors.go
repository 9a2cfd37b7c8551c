package fivetran

import "fmt"

// TransportError reports a failed status read: either the request could not
// be carried out at all or the API answered with a non-2xx code.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fivetran: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fivetran: %s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a 2xx response whose body did not carry the expected
// payload.
type ProtocolError struct {
	Op     string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("fivetran: %s: %s", e.Op, e.Reason)
}

// RemoteError reports a non-2xx answer to a pause-state mutation. It carries
// the response body so the caller can surface the API's diagnostic message.
// Mutations are best-effort from the orchestrator's point of view, so this
// error is informational rather than fatal.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("fivetran: connector update rejected with status %d: %s", e.StatusCode, e.Body)
}
