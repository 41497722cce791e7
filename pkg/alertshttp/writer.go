package alertshttp

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// responseWriter runs a hook once, right before the response is committed.
// Alerts are saved there so the flash cookie still makes it into the headers.
type responseWriter struct {
	http.ResponseWriter
	once   sync.Once
	before func()
}

func (w *responseWriter) commit() {
	w.once.Do(w.before)
}

func (w *responseWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack is required for websocket upgrades.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.commit()
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
