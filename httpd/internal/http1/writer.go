package http1

import (
	"bufio"
	"fmt"
	"strings"
)

// WriteResponse serializes one complete HTTP/1.1 response. Content-Length
// is always derived from the body, overriding any caller-supplied value,
// and Content-Type defaults to text/plain when the caller set none. Every
// response carries Connection: close; the server speaks one request per
// connection. hdr keys should be canonicalized by the caller.
func WriteResponse(bw *bufio.Writer, status int, hdr map[string][]string, body []byte) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, reasonPhrase(status)); err != nil {
		return err
	}
	if len(hdr["Content-Type"]) == 0 {
		if _, err := fmt.Fprint(bw, "Content-Type: text/plain\r\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "Content-Length: %d\r\n", len(body)); err != nil {
		return err
	}
	for k, vv := range hdr {
		if k == "Content-Length" || k == "Connection" {
			continue
		}
		for _, v := range vv {
			if _, err := fmt.Fprintf(bw, "%s: %s\r\n", k, sanitizeHeaderValue(v)); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprint(bw, "Connection: close\r\n\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

func reasonPhrase(code int) string {
	switch code {
	case 100:
		return "Continue"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	default:
		return ""
	}
}

func sanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	// Remove CR/LF and other control chars except HTAB
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
