package guestbookhandler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook/handler/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestHandler_signHandler(t *testing.T) {
	type mockBehavior func(s *mocks.MockService)

	log := zap.NewNop()

	testTable := []struct {
		name               string
		inputBody          string
		mockBehavior       mockBehavior
		expectedStatusCode int
		expectedBody       string
	}{
		{
			name:      "OK",
			inputBody: `{"name":"Alice","message":"great site"}`,
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().Sign(gomock.Any(), "Alice", "great site").Return(5, nil)
			},
			expectedStatusCode: 200,
			expectedBody:       `{"id":5}`,
		},
		{
			name:               "Empty name",
			inputBody:          `{"name":"","message":"great site"}`,
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Empty message",
			inputBody:          `{"name":"Alice","message":""}`,
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Empty request body",
			inputBody:          "{}",
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:      "Service unexpected failure",
			inputBody: `{"name":"Alice","message":"great site"}`,
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().Sign(gomock.Any(), "Alice", "great site").Return(0, errors.New("unexpected error"))
			},
			expectedStatusCode: 500,
		},
	}

	for _, tc := range testTable {
		t.Run(tc.name, func(t *testing.T) {
			c := gomock.NewController(t)
			defer c.Finish()

			service := mocks.NewMockService(c)
			tc.mockBehavior(service)

			router := chi.NewRouter()
			New(service, log).Register(router)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/guestbook", bytes.NewBufferString(tc.inputBody))

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHandler_getEntriesHandler(t *testing.T) {
	log := zap.NewNop()

	c := gomock.NewController(t)
	defer c.Finish()

	service := mocks.NewMockService(c)
	service.EXPECT().GetEntries(gomock.Any()).Return([]guestbook.Entry{
		{ID: 2, Name: "Bob", Message: "found my drink", CreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 1, Name: "Alice", Message: "great site", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	router := chi.NewRouter()
	New(service, log).Register(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guestbook", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "Bob")
}
