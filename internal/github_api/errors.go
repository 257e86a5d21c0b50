package githubapi

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError is returned when GitHub reports an exhausted quota. There is
// no backoff strategy: callers surface the reset time and recommend supplying
// an access token.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github api rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsRateLimit reports whether err wraps a rate-limit response.
func IsRateLimit(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
