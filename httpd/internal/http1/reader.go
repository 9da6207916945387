package http1

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	ErrMalformedRequestLine = errors.New("http1: malformed request line")
	ErrMalformedHeader      = errors.New("http1: malformed header line")
	ErrBadContentLength     = errors.New("http1: invalid Content-Length")
)

// ParsedRequest is a minimal representation parsed from the wire.
// ContentLength is -1 for chunked framing and 0 when no body header
// is present. Body yields the request body according to the framing
// the headers declared; reading past the declared boundary returns
// io.EOF, and a connection that ends before the boundary surfaces
// io.ErrUnexpectedEOF.
type ParsedRequest struct {
	Method        string
	Path          string
	Proto         string
	Header        map[string][]string
	ContentLength int64
	Body          io.Reader
}

type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int
}

func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	line, err := readLineLimit(r.BR, r.MaxHeaderBytes)
	if err != nil {
		return nil, err
	}
	method, rest, ok1 := strings.Cut(line, " ")
	path, proto, ok2 := strings.Cut(rest, " ")
	if !ok1 || !ok2 || !validMethod(method) || path == "" {
		return nil, ErrMalformedRequestLine
	}
	if !strings.HasPrefix(proto, "HTTP/1.") {
		return nil, ErrMalformedRequestLine
	}
	hdr, err := r.readHeaders()
	if err != nil {
		return nil, err
	}
	// Decide body source: chunked TE wins over Content-Length, else empty.
	var cl int64
	var body io.Reader
	switch {
	case hasChunkedTE(hdr):
		cl = -1
		body = newChunkedBody(r.BR, r.MaxHeaderBytes)
	case getHeader(hdr, "Content-Length") != "":
		n, err := strconv.ParseInt(strings.TrimSpace(getHeader(hdr, "Content-Length")), 10, 64)
		if err != nil || n < 0 {
			return nil, ErrBadContentLength
		}
		cl = n
		if cl > 0 {
			body = &lengthBody{br: r.BR, remain: cl}
		} else {
			body = strings.NewReader("")
		}
	default:
		body = strings.NewReader("")
	}
	return &ParsedRequest{
		Method:        method,
		Path:          path,
		Proto:         proto,
		Header:        hdr,
		ContentLength: cl,
		Body:          body,
	}, nil
}

func (r *Reader) readHeaders() (map[string][]string, error) {
	h := make(map[string][]string)
	for {
		line, err := readLineLimit(r.BR, r.MaxHeaderBytes)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, ErrMalformedHeader
		}
		k := strings.TrimSpace(line[:i])
		v := strings.TrimSpace(line[i+1:])
		if !httpguts.ValidHeaderFieldName(k) || !httpguts.ValidHeaderFieldValue(v) {
			return nil, ErrMalformedHeader
		}
		hk := canonicalHeaderKey(k)
		h[hk] = append(h[hk], v)
	}
	return h, nil
}

// lengthBody reads exactly remain bytes off the connection. The
// underlying bufio.Reader issues as many socket reads as the peer's
// segmentation requires; a stream that ends short of the declared
// length is a framing error.
type lengthBody struct {
	br     *bufio.Reader
	remain int64
}

func (b *lengthBody) Read(p []byte) (int, error) {
	if b.remain <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > b.remain {
		p = p[:b.remain]
	}
	n, err := b.br.Read(p)
	b.remain -= int64(n)
	if err == io.EOF && b.remain > 0 {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

func getHeader(h map[string][]string, k string) string {
	if vv, ok := h[canonicalHeaderKey(k)]; ok && len(vv) > 0 {
		return vv[0]
	}
	return ""
}

func hasChunkedTE(h map[string][]string) bool {
	for _, v := range h[canonicalHeaderKey("Transfer-Encoding")] {
		if strings.EqualFold(strings.TrimSpace(v), "chunked") {
			return true
		}
	}
	return false
}

func validMethod(m string) bool {
	if m == "" {
		return false
	}
	for _, r := range m {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}
	return true
}

// Very small canonicalizer to avoid importing textproto here.
func canonicalHeaderKey(s string) string {
	b := []byte(strings.ToLower(s))
	upper := true
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			if upper {
				b[i] = byte(c - 'a' + 'A')
			}
			upper = false
			continue
		}
		upper = c == '-'
	}
	return string(b)
}
