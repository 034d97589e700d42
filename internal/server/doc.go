// Package server contains the HTTP router, middleware and REST API for
// the video studio service.
package server
