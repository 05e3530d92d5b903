// Package http implements the REST transport of the catalog.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as request tracing, access logging, metrics, CORS,
// authentication and throttling of public endpoints are handled in this
// package before requests are delegated to the service layer.
package http
