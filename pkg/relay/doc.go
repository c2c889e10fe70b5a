// Package relay is a small client for the ngrok REST API, limited to what
// the dashboard needs: listing the tunnels visible to an API token.
//
// Transient failures (network errors, 429 and 5xx) are retried with
// exponential backoff. Responses are cached per token with RFC 7234
// semantics, so one account's cached listing is never served to another.
package relay
