package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/vip-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vip-marketplace/internal/models"
)

// MockService реализует интерфейс submit.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitForm(ctx context.Context, userUID string, req models.DummyForm) (string, error) {
	args := m.Called(ctx, userUID, req)
	return args.String(0), args.Error(1)
}

func TestSubmitFormHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"category":"hospital","payload":{"patient_name":"Ravi"},"contact_phone":"+91 90000 00001"}`

	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешная отправка заявки",
			body:    validBody,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SubmitForm", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyForm")).
					Return("form-1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"sms_status":"pending"`,
		},
		{
			name:           "неизвестная категория",
			body:           `{"category":"spacecraft","payload":{},"contact_phone":"+91 90000 00001"}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Category must be one of`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           validBody,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "ошибка сервиса",
			body:    validBody,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SubmitForm", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyForm")).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not submit form"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/forms", strings.NewReader(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
