package handler

import "github.com/labstack/echo/v4"

// apiResponse is the success envelope every endpoint returns. StatusCode
// mirrors the HTTP status so non-HTTP-aware clients can branch on the body
// alone.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// errorEnvelope documents the failure envelope rendered by the central error
// handler; declared here so the swagger annotations can reference it.
type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// respond writes the uniform success envelope.
func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}
