package envbar

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// injector is a buffering http.ResponseWriter that splices a fragment into
// HTML responses before the closing </body> tag. Non-HTML responses stream
// through untouched.
//
// The HTML decision is made from the Content-Type header at the first write,
// falling back to content sniffing when the handler never set one. Until the
// decision is made the status code is held back so headers reach the client
// exactly once, with a corrected Content-Length when the body grew.
type injector struct {
	rw          http.ResponseWriter
	fragment    []byte
	buf         bytes.Buffer
	status      int
	decided     bool
	inject      bool
	wroteHeader bool
}

func newInjector(rw http.ResponseWriter, fragment []byte) *injector {
	return &injector{rw: rw, fragment: fragment}
}

func (i *injector) Header() http.Header {
	return i.rw.Header()
}

func (i *injector) WriteHeader(status int) {
	if i.status == 0 {
		i.status = status
	}
	i.decide(nil)
}

func (i *injector) Write(p []byte) (int, error) {
	if !i.decided {
		i.decide(p)
	}
	if !i.decided || i.inject {
		return i.buf.Write(p)
	}
	i.flushHeader()
	if i.buf.Len() > 0 {
		if _, err := i.rw.Write(i.buf.Bytes()); err != nil {
			return 0, err
		}
		i.buf.Reset()
	}
	return i.rw.Write(p)
}

// Flush forwards streaming flushes in pass-through mode. Buffered HTML
// cannot be flushed early: the splice point is only known at the end.
func (i *injector) Flush() {
	if !i.decided || i.inject {
		return
	}
	i.flushHeader()
	if f, ok := i.rw.(http.Flusher); ok {
		f.Flush()
	}
}

// decide settles pass-through versus buffering. With no Content-Type header
// and no body bytes yet the decision is deferred to the next write.
func (i *injector) decide(p []byte) {
	ct := i.rw.Header().Get("Content-Type")
	if ct == "" && len(p) > 0 {
		ct = http.DetectContentType(p)
	}
	if ct == "" {
		return
	}
	i.decided = true
	i.inject = strings.Contains(strings.ToLower(ct), "text/html")
}

func (i *injector) flushHeader() {
	if i.wroteHeader {
		return
	}
	i.wroteHeader = true
	if i.status != 0 {
		i.rw.WriteHeader(i.status)
	}
}

// finish replays a buffered HTML response with the fragment spliced in
// before the last </body> (case-insensitive), appending it when the tag is
// absent. A set Content-Length header is corrected to the new body size.
func (i *injector) finish() error {
	if !i.decided {
		// Empty body: nothing to inject, just release the held status.
		i.flushHeader()
		return nil
	}
	if !i.inject {
		i.flushHeader()
		return nil
	}

	body := i.buf.Bytes()
	out := make([]byte, 0, len(body)+len(i.fragment))
	if idx := lastBodyTagIndex(body); idx >= 0 {
		out = append(out, body[:idx]...)
		out = append(out, i.fragment...)
		out = append(out, body[idx:]...)
	} else {
		out = append(out, body...)
		out = append(out, i.fragment...)
	}

	if i.rw.Header().Get("Content-Length") != "" {
		i.rw.Header().Set("Content-Length", strconv.Itoa(len(out)))
	}
	i.flushHeader()
	_, err := i.rw.Write(out)
	return err
}

var bodyCloseTag = []byte("</body>")

// lastBodyTagIndex finds the last </body> tag case-insensitively. The tag is
// plain ASCII, so the search runs over a byte-wise ASCII-lowered copy of the
// same length: offsets stay valid for the original body, which a Unicode
// lowering cannot guarantee.
func lastBodyTagIndex(body []byte) int {
	lower := make([]byte, len(body))
	for i, c := range body {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return bytes.LastIndex(lower, bodyCloseTag)
}
