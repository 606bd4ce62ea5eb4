package health

import (
	"github.com/sagetools/sagekit/core/handler"
	"github.com/sagetools/sagekit/core/response"
)

// Liveness answers "ALIVE" with 200 OK without touching dependencies.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 for high-frequency pings.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
