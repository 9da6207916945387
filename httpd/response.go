package httpd

// Response is built by a handler (or synthesized by the server for
// protocol errors) and consumed once by the serializer. Content-Length
// is always computed from Body at write time; a Content-Length set here
// is ignored. Content-Type defaults to text/plain when unset.
type Response struct {
	StatusCode int
	Header     Header
	Body       []byte
}
