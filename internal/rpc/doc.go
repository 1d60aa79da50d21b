// Package rpc is a minimal JSON-RPC client for the packaged node, used by
// the health command (and the image HEALTHCHECK) to ask a running daemon
// how it is doing.
//
// The node speaks Bitcoin-style JSON-RPC over HTTP with basic
// authentication. Transport is github.com/AccumulateNetwork/jsonrpc2/v15,
// whose client carries basic-auth credentials and an http.Client timeout.
// Only the handful of methods the health check needs are modeled — this
// is not a general node API binding.
package rpc
