package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest_backend/internal/feature/ledger/domain/entity"
	"invest_backend/internal/feature/ledger/usecase"
	jwtmw "invest_backend/internal/platform/jwt"
	"invest_backend/internal/shared/symbol"
)

type stubLedgerUsecase struct {
	submitFn    func(ctx context.Context, ownerID uint, rawSymbol string, kind entity.Kind, quantity int64) (*entity.Transaction, error)
	portfolioFn func(ctx context.Context, ownerID uint) (usecase.PortfolioSummary, error)
	historyFn   func(ctx context.Context, ownerID uint) ([]entity.Transaction, error)
}

func (s *stubLedgerUsecase) SubmitTransaction(ctx context.Context, ownerID uint, rawSymbol string, kind entity.Kind, quantity int64) (*entity.Transaction, error) {
	return s.submitFn(ctx, ownerID, rawSymbol, kind, quantity)
}

func (s *stubLedgerUsecase) GetPortfolio(ctx context.Context, ownerID uint) (usecase.PortfolioSummary, error) {
	return s.portfolioFn(ctx, ownerID)
}

func (s *stubLedgerUsecase) GetTransactionHistory(ctx context.Context, ownerID uint) ([]entity.Transaction, error) {
	return s.historyFn(ctx, ownerID)
}

func setupLedgerRouter(uc LedgerUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(1))
	})
	h := NewLedgerHandler(uc)
	r.POST("/transactions", h.Submit)
	r.GET("/transactions", h.History)
	r.GET("/portfolio", h.Portfolio)
	return r
}

func TestSubmit_Committed(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	uc := &stubLedgerUsecase{
		submitFn: func(_ context.Context, ownerID uint, rawSymbol string, kind entity.Kind, quantity int64) (*entity.Transaction, error) {
			assert.Equal(t, uint(1), ownerID)
			assert.Equal(t, "tcs", rawSymbol)
			assert.Equal(t, entity.KindBuy, kind)
			assert.Equal(t, int64(10), quantity)
			return &entity.Transaction{
				ID: 7, OwnerID: ownerID, Symbol: "TCS.NS", Kind: kind,
				Quantity: quantity, Price: decimal.NewFromInt(100), CreatedAt: created,
			}, nil
		},
	}
	r := setupLedgerRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions",
		strings.NewReader(`{"symbol":"tcs","kind":"BUY","quantity":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Status      string `json:"status"`
		Transaction struct {
			ID        uint   `json:"id"`
			Symbol    string `json:"symbol"`
			Kind      string `json:"kind"`
			Quantity  int64  `json:"quantity"`
			Price     string `json:"price"`
			CreatedAt string `json:"created_at"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "COMMITTED", body.Status)
	assert.Equal(t, uint(7), body.Transaction.ID)
	assert.Equal(t, "TCS.NS", body.Transaction.Symbol)
	assert.Equal(t, "100", body.Transaction.Price)
	assert.Equal(t, "2026-03-01T10:30:00Z", body.Transaction.CreatedAt)
}

func TestSubmit_ErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "invalid symbol", err: symbol.ErrInvalid, expectedStatus: http.StatusBadRequest},
		{name: "invalid quantity", err: usecase.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest},
		{name: "invalid kind", err: usecase.ErrInvalidKind, expectedStatus: http.StatusBadRequest},
		{name: "over-sell", err: usecase.ErrInsufficientShares, expectedStatus: http.StatusBadRequest},
		{name: "quote unavailable", err: usecase.ErrQuoteUnavailable, expectedStatus: http.StatusBadGateway},
		{name: "wrapped quote failure", err: fmt.Errorf("%w: timeout", usecase.ErrQuoteUnavailable), expectedStatus: http.StatusBadGateway},
		{name: "storage failure", err: fmt.Errorf("disk on fire"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubLedgerUsecase{
				submitFn: func(context.Context, uint, string, entity.Kind, int64) (*entity.Transaction, error) {
					return nil, tc.err
				},
			}
			r := setupLedgerRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/transactions",
				strings.NewReader(`{"symbol":"tcs","kind":"SELL","quantity":10}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "disk on fire", "internal detail must not leak")
			}
		})
	}
}

func TestSubmit_MalformedBody(t *testing.T) {
	r := setupLedgerRouter(&stubLedgerUsecase{
		submitFn: func(context.Context, uint, string, entity.Kind, int64) (*entity.Transaction, error) {
			t.Fatal("usecase must not be called for a malformed body")
			return nil, nil
		},
	})

	for _, body := range []string{
		`{`,
		`{}`,
		`{"symbol":"tcs","kind":"HOLD","quantity":10}`,
		`{"symbol":"tcs","kind":"BUY","quantity":-1}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestHistory_ReturnsItems(t *testing.T) {
	uc := &stubLedgerUsecase{
		historyFn: func(_ context.Context, ownerID uint) ([]entity.Transaction, error) {
			assert.Equal(t, uint(1), ownerID)
			return []entity.Transaction{
				{ID: 2, Symbol: "TCS.NS", Kind: entity.KindSell, Quantity: 5, Price: decimal.NewFromInt(110)},
				{ID: 1, Symbol: "TCS.NS", Kind: entity.KindBuy, Quantity: 10, Price: decimal.NewFromInt(100)},
			}, nil
		},
	}
	r := setupLedgerRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "SELL", items[0]["kind"])
	assert.Equal(t, "BUY", items[1]["kind"])
}

func TestHistory_EmptyIsArrayNotNull(t *testing.T) {
	uc := &stubLedgerUsecase{
		historyFn: func(context.Context, uint) ([]entity.Transaction, error) { return nil, nil },
	}
	r := setupLedgerRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestPortfolio_ResponseShape(t *testing.T) {
	uc := &stubLedgerUsecase{
		portfolioFn: func(_ context.Context, ownerID uint) (usecase.PortfolioSummary, error) {
			return usecase.PortfolioSummary{
				TotalInvested: decimal.NewFromInt(1000),
				MarketValue:   decimal.NewFromInt(1200),
				PnL:           decimal.NewFromInt(200),
				Holdings:      1,
				Rows: []usecase.PortfolioRow{{
					Symbol:       "TCS.NS",
					Quantity:     10,
					AvgCost:      decimal.NewFromInt(100),
					CurrentPrice: decimal.NewFromInt(120),
					Invested:     decimal.NewFromInt(1000),
					MarketValue:  decimal.NewFromInt(1200),
					PnL:          decimal.NewFromInt(200),
				}},
			}, nil
		},
	}
	r := setupLedgerRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalInvested string `json:"total_invested"`
		MarketValue   string `json:"market_value"`
		PnL           string `json:"pnl"`
		Holdings      int    `json:"holdings"`
		Positions     []struct {
			Symbol string `json:"symbol"`
			PnL    string `json:"pnl"`
			Stale  bool   `json:"stale"`
		} `json:"positions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1000", body.TotalInvested)
	assert.Equal(t, "1200", body.MarketValue)
	assert.Equal(t, "200", body.PnL)
	assert.Equal(t, 1, body.Holdings)
	require.Len(t, body.Positions, 1)
	assert.Equal(t, "TCS.NS", body.Positions[0].Symbol)
	assert.False(t, body.Positions[0].Stale)
}

func TestPortfolio_UsecaseFailure(t *testing.T) {
	uc := &stubLedgerUsecase{
		portfolioFn: func(context.Context, uint) (usecase.PortfolioSummary, error) {
			return usecase.PortfolioSummary{}, fmt.Errorf("db gone")
		},
	}
	r := setupLedgerRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db gone")
}
