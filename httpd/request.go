package httpd

// Request is one parsed HTTP request. It lives for the duration of a
// single connection: created by the parser with the body fully read,
// handed to the matched handler, then discarded. Handlers must not
// retain it past their own invocation.
type Request struct {
	Method     string
	Path       string
	Proto      string
	Header     Header
	Body       []byte
	RemoteAddr string
}
