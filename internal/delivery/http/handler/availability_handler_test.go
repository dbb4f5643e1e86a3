package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/delivery/http/middleware"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/usecase"
	"healthflow-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAvailabilityUsecase struct {
	mock.Mock
}

func (m *mockAvailabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityListResponse), args.Error(1)
}

func (m *mockAvailabilityUsecase) SetAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityListResponse, error) {
	args := m.Called(ctx, doctorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityListResponse), args.Error(1)
}

func roleRequest(method, target string, body []byte, userID uuid.UUID, roleID int) *http.Request {
	req := authedRequest(method, target, body, userID)
	ctx := context.WithValue(req.Context(), middleware.RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestGetAvailability(t *testing.T) {
	doctorID := uuid.New()

	t.Run("returns the doctor's windows", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())
		uc.On("GetAvailability", mock.Anything, doctorID).Return(&dto.AvailabilityListResponse{
			Windows: []dto.AvailabilityWindowResponse{
				{ID: uuid.New(), DoctorID: doctorID, DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
			},
			Total: 1,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.GetAvailability(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("maps an unknown doctor to 404", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())
		uc.On("GetAvailability", mock.Anything, doctorID).Return(nil, usecase.ErrDoctorNotFound)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.GetAvailability(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSetAvailability(t *testing.T) {
	doctorID := uuid.New()

	validBody := func() []byte {
		body, _ := json.Marshal(dto.SetAvailabilityRequest{
			Windows: []dto.AvailabilityWindowRequest{
				{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
				{DayOfWeek: 1, StartTime: "14:00", EndTime: "17:00"},
			},
		})
		return body
	}

	t.Run("lets a doctor replace their own windows", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())
		uc.On("SetAvailability", mock.Anything, doctorID, mock.AnythingOfType("*dto.SetAvailabilityRequest")).
			Return(&dto.AvailabilityListResponse{Total: 2}, nil)

		req := roleRequest(http.MethodPut, "/", validBody(), doctorID, entity.RoleIDDoctor)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.SetAvailability(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("forbids a doctor editing another doctor's windows", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		req := roleRequest(http.MethodPut, "/", validBody(), uuid.New(), entity.RoleIDDoctor)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.SetAvailability(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		uc.AssertNotCalled(t, "SetAvailability")
	})

	t.Run("lets an admin act for any doctor", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())
		uc.On("SetAvailability", mock.Anything, doctorID, mock.AnythingOfType("*dto.SetAvailabilityRequest")).
			Return(&dto.AvailabilityListResponse{Total: 2}, nil)

		req := roleRequest(http.MethodPut, "/", validBody(), uuid.New(), entity.RoleIDAdmin)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.SetAvailability(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects an out-of-range weekday", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		body, _ := json.Marshal(dto.SetAvailabilityRequest{
			Windows: []dto.AvailabilityWindowRequest{
				{DayOfWeek: 7, StartTime: "08:00", EndTime: "12:00"},
			},
		})
		req := roleRequest(http.MethodPut, "/", body, doctorID, entity.RoleIDDoctor)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.SetAvailability(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "SetAvailability")
	})

	t.Run("maps an inverted window to 400", func(t *testing.T) {
		uc := new(mockAvailabilityUsecase)
		h := NewAvailabilityHandler(uc, validator.NewValidator())
		uc.On("SetAvailability", mock.Anything, doctorID, mock.AnythingOfType("*dto.SetAvailabilityRequest")).
			Return(nil, usecase.ErrInvalidTimeRange)

		req := roleRequest(http.MethodPut, "/", validBody(), doctorID, entity.RoleIDDoctor)
		req = mux.SetURLVars(req, map[string]string{"doctorId": doctorID.String()})
		rec := httptest.NewRecorder()

		h.SetAvailability(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
