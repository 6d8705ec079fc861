package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/habitquest/habitquest-go/internal/domain"
)

func TestHandleSpend(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           SpendGoldRequest
		setupMock      func(*MockEconomyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: SpendGoldRequest{UserID: "u1", Amount: 30, Reference: "shop:1"},
			setupMock: func(m *MockEconomyService) {
				m.On("Spend", mock.Anything, "u1", 30, "shop:1").
					Return(&domain.GoldTransaction{UserID: "u1", Amount: -30, BalanceAfter: 70}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balance_after":70`,
		},
		{
			name: "Not enough gold",
			body: SpendGoldRequest{UserID: "u1", Amount: 500, Reference: "shop:2"},
			setupMock: func(m *MockEconomyService) {
				m.On("Spend", mock.Anything, "u1", 500, "shop:2").
					Return(nil, domain.NewInsufficientResource(domain.ErrInsufficientFunds, "need 500 gold, have 70"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "need 500 gold, have 70",
		},
		{
			name:           "Zero amount",
			body:           SpendGoldRequest{UserID: "u1", Amount: 0, Reference: "shop:3"},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Must be greater than 0",
		},
		{
			name:           "Missing reference",
			body:           SpendGoldRequest{UserID: "u1", Amount: 5},
			setupMock:      func(m *MockEconomyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"reference":"This field is required"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockEconomyService)
			tt.setupMock(m)

			rec := serve(t, http.MethodPost, "/gold/spend", "/gold/spend", tt.body, NewGoldHandler(m).HandleSpend)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}

func TestHandleHistory(t *testing.T) {
	m := new(MockEconomyService)
	m.On("History", mock.Anything, "u1", DefaultHistoryLimit).Return([]domain.GoldTransaction{{Amount: 5}}, nil)
	m.On("History", mock.Anything, "u1", 5).Return([]domain.GoldTransaction{}, nil)
	h := NewGoldHandler(m)

	rec := serve(t, http.MethodGet, "/gold/{userID}/history", "/gold/u1/history", nil, h.HandleHistory)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/gold/{userID}/history", "/gold/u1/history?limit=5", nil, h.HandleHistory)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, http.MethodGet, "/gold/{userID}/history", "/gold/u1/history?limit=1000", nil, h.HandleHistory)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrMsgInvalidLimit, decodeFailure(t, rec).Detail)

	m.AssertExpectations(t)
}
