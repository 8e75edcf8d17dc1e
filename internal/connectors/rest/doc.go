// Package rest provides the shared HTTP layer for REST API connectors:
// an authenticated JSON client with a uniform retry policy, proactive and
// reactive rate limiting, Link-header pagination parsing, and tolerant
// field extraction from loosely-typed JSON payloads.
//
// The client retries a single request on transient failures (HTTP 429 and
// timeouts) up to a bounded attempt count, backing off exponentially and
// honouring Retry-After hints. Any other HTTP error is returned immediately
// as an *APIError carrying the status code and URL for operator diagnosis.
package rest
