package compliance

import "fmt"

// Request is the JSON body posted to the compliance endpoint.
type Request struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id"`
}

// Response is the JSON body returned on success.
type Response struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}

// errorBody is the shape of a rate-limit rejection, e.g. {"detail": "..."}.
type errorBody struct {
	Detail any `json:"detail"`
}

// APIError is returned for any non-2xx status other than 429.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.Body)
}

// RateLimitError is returned for 429 responses. Detail is the server's
// explanation when it sent one, otherwise DefaultRateLimitDetail.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	return e.Detail
}

// StatusCode always reports 429.
func (e *RateLimitError) StatusCode() int {
	return 429
}
