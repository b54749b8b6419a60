// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newMethodRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))
	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "registered GET", method: http.MethodGet, target: "/items", wantStatus: http.StatusOK},
		{name: "registered POST with param", method: http.MethodPost, target: "/items/3", wantStatus: http.StatusCreated},
		{name: "wrong method", method: http.MethodDelete, target: "/items", wantStatus: http.StatusNotFound},
		{name: "wrong method with param", method: http.MethodGet, target: "/items/3", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, target: "/nothing", wantStatus: http.StatusNotFound},
	}

	router := newMethodRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Equal(t, "Route not found", messageOf(t, rr))
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestCheckHTTPMethod_NeverAnswers405(t *testing.T) {
	router := newMethodRouter()

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodPost} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, "/items", nil))
		assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code, method)
	}
}
