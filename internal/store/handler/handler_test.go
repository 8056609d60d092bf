package storehandler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	"github.com/sippsearcher/sippsearcher-backend/internal/store/handler/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestHandler_getAllStoresHandler(t *testing.T) {
	type mockBehavior func(s *mocks.MockService)

	log := zap.NewNop()

	testTable := []struct {
		name               string
		mockBehavior       mockBehavior
		expectedStatusCode int
	}{
		{
			name: "OK",
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().GetAll(gomock.Any()).Return([]store.Store{}, nil)
			},
			expectedStatusCode: 200,
		},
		{
			name: "Storage failure",
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().GetAll(gomock.Any()).Return(nil, errors.New("unexpected error"))
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
			req := httptest.NewRequest(http.MethodGet, "/stores", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
		})
	}
}

func TestHandler_getStoresNearHandler(t *testing.T) {
	type mockBehavior func(s *mocks.MockService)

	log := zap.NewNop()

	testTable := []struct {
		name               string
		url                string
		mockBehavior       mockBehavior
		expectedStatusCode int
	}{
		{
			name: "OK",
			url:  "/stores/near/40.7128/-74.0060/10",
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().
					GetNear(gomock.Any(), 40.7128, -74.0060, 10.0).
					Return([]store.StoreWithDistance{}, nil)
			},
			expectedStatusCode: 200,
		},
		{
			name:               "Invalid latitude",
			url:                "/stores/near/abc/-74.0060/10",
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Invalid radius",
			url:                "/stores/near/40.7128/-74.0060/oops",
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name: "Storage failure",
			url:  "/stores/near/40.7128/-74.0060/10",
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().
					GetNear(gomock.Any(), 40.7128, -74.0060, 10.0).
					Return(nil, errors.New("unexpected error"))
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
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
		})
	}
}

func TestHandler_createStoreHandler(t *testing.T) {
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
			inputBody: `{"name":"7-Eleven","address":"123 Main St","latitude":40.7128,"longitude":-74.0060,"phone":"(555) 123-4567"}`,
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			expectedStatusCode: 200,
			expectedBody:       `{"id":1}`,
		},
		{
			name:               "Missing name",
			inputBody:          `{"address":"123 Main St","latitude":40.7128,"longitude":-74.0060}`,
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Latitude out of range",
			inputBody:          `{"name":"7-Eleven","address":"123 Main St","latitude":95,"longitude":-74.0060}`,
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:               "Missing coordinates",
			inputBody:          `{"name":"7-Eleven","address":"123 Main St"}`,
			mockBehavior:       func(s *mocks.MockService) {},
			expectedStatusCode: 400,
		},
		{
			name:      "Storage failure",
			inputBody: `{"name":"7-Eleven","address":"123 Main St","latitude":40.7128,"longitude":-74.0060}`,
			mockBehavior: func(s *mocks.MockService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(0, errors.New("unexpected error"))
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
			req := httptest.NewRequest(http.MethodPost, "/stores", bytes.NewBufferString(tc.inputBody))

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatusCode, w.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}
