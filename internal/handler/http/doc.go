// Package http implements the REST transport of the video sharing API.
//
// It wires routes, request handlers and middleware. Bearer authentication,
// trace ids, access logging, CORS, security headers and per-IP attempt
// limiting run here before requests are delegated to the service layer.
// Errors coming back from services are translated to JSON messages by a
// single ordered table in errors_mapper.go.
package http
