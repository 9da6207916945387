// Package httpd provides a deliberately small HTTP/1.1 server built
// directly on TCP sockets, serving exactly one request per accepted
// connection.
//
// Highlights
//   - Both message-body framings: Content-Length and chunked transfer
//     encoding, tolerant of arbitrary socket segmentation.
//   - Expect: 100-continue handling with a single interim response.
//   - Exact (path, method) routing with distinct 404/405 outcomes.
//   - Goroutine per connection; framing errors are answered with a
//     synthesized 400 and never escape the connection's worker.
//   - Optional hardening: read/write deadlines and a connection cap,
//     both disabled by default.
//
// Quick start:
//
//	r := httpd.NewRouter()
//	r.Handle("/health", "GET", httpd.HandlerFunc(func(*httpd.Request) *httpd.Response {
//	    return &httpd.Response{StatusCode: 200, Body: []byte("ok")}
//	}))
//	s := &httpd.Server{Addr: ":10000", Router: r}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
//
// Out of scope: TLS, keep-alive, pipelining, HTTP/2, query-string
// parsing, multipart bodies, and compression.
package httpd
