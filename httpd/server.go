package httpd

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dqx0.com/go/inferd/httpd/internal/http1"
	"dqx0.com/go/inferd/internal/obs"
)

// Server accepts TCP connections and serves one HTTP/1.1 request per
// connection, closing it after the response is written. Each accepted
// connection runs in its own goroutine; a slow client stalls only its
// own worker.
//
// ReadTimeout, WriteTimeout and MaxConns are hardening extensions: the
// zero values preserve the default behavior of blocking indefinitely
// and accepting without bound.
type Server struct {
	Addr           string
	Router         *Router
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxHeaderBytes int
	MaxConns       int
	Logger         *zerolog.Logger
	Meter          obs.Meter

	sem chan struct{}
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = ":10000"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on l. Accept failures for individual
// connections are logged and skipped; only a dead listener ends the
// loop.
func (s *Server) Serve(l net.Listener) error {
	defer l.Close()
	if s.MaxConns > 0 && s.sem == nil {
		s.sem = make(chan struct{}, s.MaxConns)
	}
	for {
		c, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// A failed accept only loses that one connection; the
			// loop keeps going. Brief pause so a persistent failure
			// cannot spin hot.
			s.log().Warn().Err(err).Msg("accept failed; connection skipped")
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if s.sem != nil {
			s.sem <- struct{}{}
		}
		go s.serveConn(c)
	}
}

func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	if s.sem != nil {
		defer func() { <-s.sem }()
	}
	start := time.Now()
	s.meter().Counter("httpd.conns.accepted", 1)

	if s.ReadTimeout > 0 {
		_ = c.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}
	if s.WriteTimeout > 0 {
		_ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}

	br := bufio.NewReader(c)
	bw := bufio.NewWriter(c)
	rr := &http1.Reader{BR: br, MaxHeaderBytes: s.headerLimit()}
	pr, err := rr.ReadRequest()
	if err != nil {
		s.reject(bw, c, err)
		return
	}
	req := &Request{
		Method:     pr.Method,
		Path:       pr.Path,
		Proto:      pr.Proto,
		Header:     Header(pr.Header),
		RemoteAddr: c.RemoteAddr().String(),
	}

	// Interim 100 Continue goes out after the headers and before the
	// first body byte is pulled, once, whatever the framing mode.
	if strings.EqualFold(req.Header.Get("Expect"), "100-continue") {
		if err := http1.WriteContinue(bw); err != nil {
			s.log().Warn().Err(err).Str("remote", req.RemoteAddr).Msg("interim write failed")
			return
		}
		if err := bw.Flush(); err != nil {
			s.log().Warn().Err(err).Str("remote", req.RemoteAddr).Msg("interim flush failed")
			return
		}
	}

	// Materialize the whole body before dispatch. Any short read or
	// malformed chunk here is a fatal framing error.
	body, err := io.ReadAll(pr.Body)
	if err != nil {
		s.reject(bw, c, err)
		return
	}
	req.Body = body

	res := s.dispatch(req)
	s.meter().Counter("httpd.responses", 1, obs.Label{Key: "status", Value: strconv.Itoa(res.StatusCode)})
	if err := http1.WriteResponse(bw, res.StatusCode, res.Header, res.Body); err != nil {
		s.log().Warn().Err(err).Str("remote", req.RemoteAddr).Msg("response write failed")
		return
	}
	if err := bw.Flush(); err != nil {
		s.log().Warn().Err(err).Str("remote", req.RemoteAddr).Msg("response flush failed")
		return
	}
	s.meter().Histogram("httpd.request.duration_ms", float64(time.Since(start).Milliseconds()))
	s.log().Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", res.StatusCode).
		Str("remote", req.RemoteAddr).
		Msg("request served")
}

func (s *Server) dispatch(req *Request) *Response {
	if s.Router == nil {
		return &Response{StatusCode: 404, Body: []byte("not found")}
	}
	h, err := s.Router.Resolve(req.Path, req.Method)
	switch {
	case errors.Is(err, ErrNotFound):
		return &Response{StatusCode: 404, Body: []byte("not found")}
	case errors.Is(err, ErrMethodNotAllowed):
		return &Response{StatusCode: 405, Body: []byte("method not allowed")}
	}
	res := h.Serve(req)
	if res == nil {
		return &Response{StatusCode: 500, Body: []byte("internal server error")}
	}
	return res
}

// reject answers a framing or parse failure with a best-effort 400 and
// leaves the connection to be closed by the caller.
func (s *Server) reject(bw *bufio.Writer, c net.Conn, cause error) {
	s.meter().Counter("httpd.framing.errors", 1)
	s.log().Warn().Err(cause).Str("remote", c.RemoteAddr().String()).Msg("malformed request")
	_ = http1.WriteResponse(bw, 400, nil, []byte("bad request"))
	_ = bw.Flush()
}

func (s *Server) headerLimit() int {
	if s.MaxHeaderBytes <= 0 {
		return 8 << 10
	}
	return s.MaxHeaderBytes
}

func (s *Server) meter() obs.Meter {
	if s.Meter != nil {
		return s.Meter
	}
	return obs.NopMeter{}
}

func (s *Server) log() *zerolog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return &nopLogger
}

var nopLogger = zerolog.Nop()
