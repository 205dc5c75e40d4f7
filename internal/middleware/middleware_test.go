package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostduel/server/internal/testutil"
)

func TestResponseWriterCapturesStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &ResponseWriter{ResponseWriter: rec, status: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	n, err := rw.Write([]byte("missing"))
	require.NoError(t, err)

	assert.Equal(t, 7, n)
	assert.Equal(t, http.StatusNotFound, rw.Status())
	assert.Equal(t, 7, rw.Size())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeHijacker struct {
	http.ResponseWriter
	called bool
}

func (f *fakeHijacker) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	f.called = true
	return nil, nil, nil
}

func TestHijackPassesThrough(t *testing.T) {
	inner := &fakeHijacker{ResponseWriter: httptest.NewRecorder()}
	rw := &ResponseWriter{ResponseWriter: inner}

	_, _, err := rw.Hijack()
	require.NoError(t, err)
	assert.True(t, inner.called)
}

func TestHijackUnsupportedWriter(t *testing.T) {
	rw := &ResponseWriter{ResponseWriter: httptest.NewRecorder()}

	_, _, err := rw.Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestLoggingPreservesResponse(t *testing.T) {
	handler := Logging(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "queued", rec.Body.String())
}

func TestRecoveryInvokesPanicHandler(t *testing.T) {
	var got any
	handler := Recovery(testutil.NopLogger(), func(w http.ResponseWriter, _ *http.Request, v any) {
		got = v
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", got)
}

func TestRecoveryStaysOutOfNormalResponses(t *testing.T) {
	handler := Recovery(testutil.NopLogger(), func(http.ResponseWriter, *http.Request, any) {
		t.Error("panic handler must not run")
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
