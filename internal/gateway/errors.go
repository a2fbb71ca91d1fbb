package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork covers an unreachable gateway and any non-2xx answer other than 404.
	ErrNetwork = errors.New("gateway unavailable")
	// ErrNotFound means the entity is stale or was deleted.
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Code, http.StatusText(e.Code), e.Body)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	if e.Code == http.StatusNotFound {
		return target == ErrNotFound
	}
	return target == ErrNetwork
}
