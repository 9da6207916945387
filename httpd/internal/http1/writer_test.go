package http1

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func serialize(t *testing.T, status int, hdr map[string][]string, body []byte) string {
	t.Helper()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, status, hdr, body); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.String()
}

func TestWriteResponse_Defaults(t *testing.T) {
	out := serialize(t, 200, nil, []byte("ok"))
	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("status line: %q", out)
	}
	for _, want := range []string{
		"Content-Type: text/plain\r\n",
		"Content-Length: 2\r\n",
		"Connection: close\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\r\n\r\nok") {
		t.Fatalf("body placement: %q", out)
	}
}

func TestWriteResponse_ContentLengthOverride(t *testing.T) {
	hdr := map[string][]string{"Content-Length": {"999"}}
	out := serialize(t, 200, hdr, []byte("abc"))
	if strings.Contains(out, "Content-Length: 999") {
		t.Fatalf("caller Content-Length not overridden: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 3\r\n") {
		t.Fatalf("computed Content-Length missing: %q", out)
	}
	if strings.Count(out, "Content-Length:") != 1 {
		t.Fatalf("duplicate Content-Length: %q", out)
	}
}

func TestWriteResponse_CallerContentType(t *testing.T) {
	hdr := map[string][]string{"Content-Type": {"application/json"}}
	out := serialize(t, 200, hdr, []byte("{}"))
	if !strings.Contains(out, "Content-Type: application/json\r\n") {
		t.Fatalf("caller Content-Type lost: %q", out)
	}
	if strings.Contains(out, "Content-Type: text/plain") {
		t.Fatalf("default Content-Type not suppressed: %q", out)
	}
}

func TestWriteResponse_SanitizesValues(t *testing.T) {
	hdr := map[string][]string{"X-Injected": {"a\r\nEvil: yes"}}
	out := serialize(t, 200, hdr, nil)
	if strings.Contains(out, "\r\nEvil:") {
		t.Fatalf("header injection not stripped: %q", out)
	}
	if !strings.Contains(out, "X-Injected: aEvil: yes\r\n") {
		t.Fatalf("sanitized value mangled: %q", out)
	}
}

func TestWriteResponse_EmptyBody(t *testing.T) {
	out := serialize(t, 204, nil, nil)
	if !strings.HasPrefix(out, "HTTP/1.1 204 No Content\r\n") {
		t.Fatalf("status line: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 0\r\n") {
		t.Fatalf("Content-Length for empty body: %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\n") {
		t.Fatalf("trailing blank line: %q", out)
	}
}

func TestWriteContinue(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteContinue(bw); err != nil {
		t.Fatalf("WriteContinue: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.String() != "HTTP/1.1 100 Continue\r\n\r\n" {
		t.Fatalf("interim line: %q", buf.String())
	}
}
