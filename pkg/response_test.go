package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestHttpResponseWriter struct {
	HeaderMap  http.Header
	Body       []byte
	StatusCode int
}

func (w *TestHttpResponseWriter) Header() http.Header {
	return w.HeaderMap
}

func (w *TestHttpResponseWriter) Write(bytes []byte) (int, error) {
	w.Body = bytes
	return len(bytes), nil
}

func (w *TestHttpResponseWriter) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
}

func TestWriteResponseBytes(t *testing.T) {
	w := &TestHttpResponseWriter{HeaderMap: make(http.Header)}
	WriteResponseBytes(w, ContentType.Text, []byte("test"), http.StatusAccepted)
	assert.Equal(t, ContentType.Text, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, []byte("test"), w.Body)
	assert.Equal(t, http.StatusAccepted, w.StatusCode)

	w = &TestHttpResponseWriter{HeaderMap: make(http.Header)}
	WriteResponseBytes(w, "", []byte("no content type"), http.StatusOK)
	assert.Empty(t, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, http.StatusOK, w.StatusCode)
}

func TestWriteJSONResponse(t *testing.T) {
	w := &TestHttpResponseWriter{HeaderMap: make(http.Header)}
	WriteJSONResponse(w, map[string]int{"deletedId": 3}, http.StatusOK)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.JSONEq(t, `{"deletedId":3}`, string(w.Body))
	assert.Equal(t, http.StatusOK, w.StatusCode)

	// channels cannot be marshaled
	w = &TestHttpResponseWriter{HeaderMap: make(http.Header)}
	WriteJSONResponse(w, make(chan int), http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, w.StatusCode)
}
