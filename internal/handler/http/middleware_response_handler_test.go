package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturingWriter() (*responseWriter, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return &responseWriter{ResponseWriter: rec}, rec
}

func TestResponseWriter_RecordsStatus(t *testing.T) {
	w, rec := newCapturingWriter()

	w.WriteHeader(http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter_SecondWriteHeaderIgnored(t *testing.T) {
	w, rec := newCapturingWriter()

	w.WriteHeader(http.StatusUnauthorized)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusUnauthorized, w.status, "only the first status is kept")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	w, rec := newCapturingWriter()

	n, err := w.Write([]byte("hello"))

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, "hello", rec.Body.String())
}

func TestResponseWriter_AccumulatesSize(t *testing.T) {
	w, _ := newCapturingWriter()

	_, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, len("hello world"), w.size)
}
