package middleware

import "net/http"

// ActorHeader carries the already-authenticated wallet address of the
// caller. Signature verification happens upstream; by the time a request
// reaches this service the header is trusted.
const ActorHeader = "X-Wallet-Address"

// Actor returns the acting wallet address of the request, or "".
func Actor(r *http.Request) string {
	return r.Header.Get(ActorHeader)
}
