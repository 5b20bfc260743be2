package httputils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterDefaults(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())

	if rw.StatusCode != http.StatusOK {
		t.Errorf("default status = %d, want %d", rw.StatusCode, http.StatusOK)
	}
	if rw.HeaderWritten {
		t.Error("header should not be marked written before use")
	}
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	rw.WriteHeader(http.StatusForbidden)

	if rw.StatusCode != http.StatusForbidden {
		t.Errorf("captured status = %d, want %d", rw.StatusCode, http.StatusForbidden)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("underlying status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	// A second WriteHeader is ignored.
	rw.WriteHeader(http.StatusTeapot)
	if rw.StatusCode != http.StatusForbidden {
		t.Errorf("status after second WriteHeader = %d, want %d", rw.StatusCode, http.StatusForbidden)
	}
}

func TestResponseWriterCountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	if _, err := rw.Write([]byte("hello")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if _, err := rw.Write([]byte(" world")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if rw.BytesWritten != 11 {
		t.Errorf("bytes written = %d, want 11", rw.BytesWritten)
	}
	if rw.StatusCode != http.StatusOK {
		t.Errorf("implicit status = %d, want %d", rw.StatusCode, http.StatusOK)
	}
}
