// Package proxyclient implements the adapter to the server-side HTTP proxy
// (spec §4.2): outbound requests are relayed through POST /api/proxy/http
// so the engine never opens a direct outbound socket itself. Binary
// responses arrive base64-encoded; text responses are opportunistically
// parsed as JSON so downstream executors can route on content.
package proxyclient
