// Package server holds the HTTP server configuration.
//
// The start command reads the listen port, the API key protecting every route and the
// maximum manifest body size from here.
package server
