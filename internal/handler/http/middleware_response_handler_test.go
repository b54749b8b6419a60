// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter returns errWrite after accepting n bytes.
type failingWriter struct {
	http.ResponseWriter
	n int
}

var errWrite = errors.New("connection reset")

func (f *failingWriter) Write(b []byte) (int, error) {
	return min(f.n, len(b)), errWrite
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		wantStatus int
	}{
		{name: "single call", statuses: []int{http.StatusCreated}, wantStatus: http.StatusCreated},
		{name: "second call ignored", statuses: []int{http.StatusNotFound, http.StatusOK}, wantStatus: http.StatusNotFound},
		{name: "server error", statuses: []int{http.StatusInternalServerError}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rec}

			for _, s := range tt.statuses {
				w.WriteHeader(s)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		n, err := w.Write([]byte("hello"))

		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, "hello", rec.Body.String())
	})

	t.Run("size accumulates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rec}

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"a":`))
		_, _ = w.Write([]byte(`1}`))

		assert.Equal(t, 7, w.size)
		assert.Equal(t, http.StatusAccepted, w.status)
		assert.Equal(t, `{"a":1}`, rec.Body.String())
	})

	t.Run("partial write counted", func(t *testing.T) {
		w := &responseWriter{ResponseWriter: &failingWriter{ResponseWriter: httptest.NewRecorder(), n: 3}}

		n, err := w.Write([]byte("abcdef"))

		assert.ErrorIs(t, err, errWrite)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, w.size)
	})
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, http.StatusOK, w.status)
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	assert.Same(t, rec, w.Unwrap())
	assert.NoError(t, http.NewResponseController(w).Flush())
	assert.True(t, rec.Flushed)
}
