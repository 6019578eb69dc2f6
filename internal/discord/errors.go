package discord

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// APIError is a non-2xx answer from Discord. It satisfies
// ratelimit.HTTPError so callers can classify it by status.
type APIError struct {
	Status     int
	Code       int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != 0 {
		return fmt.Sprintf("HTTP %d (code %d): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// discordgo reports an exhausted 502 as a plain formatted error.
const maxRetriesPrefix = "Exceeded Max retries HTTP "

// convertError turns discordgo's REST failures into *APIError. Anything
// else (network, context) is returned unchanged.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		apiErr := &APIError{Err: err}
		if restErr.Response != nil {
			apiErr.Status = restErr.Response.StatusCode
		}
		if restErr.Message != nil {
			apiErr.Code = restErr.Message.Code
			apiErr.Message = restErr.Message.Message
		}
		return apiErr
	}

	var rlErr *discordgo.RateLimitError
	if errors.As(err, &rlErr) {
		apiErr := &APIError{Status: http.StatusTooManyRequests, Err: err}
		if rlErr.RateLimit != nil && rlErr.TooManyRequests != nil {
			apiErr.Message = rlErr.TooManyRequests.Message
			apiErr.RetryAfter = rlErr.TooManyRequests.RetryAfter
		}
		return apiErr
	}

	if msg := err.Error(); strings.HasPrefix(msg, maxRetriesPrefix) {
		var status int
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(msg, maxRetriesPrefix), "%d", &status); scanErr == nil {
			return &APIError{Status: status, Err: err}
		}
	}
	return err
}
