package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest_backend/internal/feature/watchlist/domain/entity"
	"invest_backend/internal/feature/watchlist/usecase"
	jwtmw "invest_backend/internal/platform/jwt"
	"invest_backend/internal/shared/symbol"
)

type stubWatchlistUsecase struct {
	addFn    func(ctx context.Context, ownerID uint, rawSymbol string) (*entity.WatchlistEntry, error)
	listFn   func(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error)
	removeFn func(ctx context.Context, ownerID uint, rawSymbol string) error
}

func (s *stubWatchlistUsecase) Add(ctx context.Context, ownerID uint, rawSymbol string) (*entity.WatchlistEntry, error) {
	return s.addFn(ctx, ownerID, rawSymbol)
}

func (s *stubWatchlistUsecase) List(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubWatchlistUsecase) Remove(ctx context.Context, ownerID uint, rawSymbol string) error {
	return s.removeFn(ctx, ownerID, rawSymbol)
}

func setupWatchlistRouter(uc WatchlistUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(1))
	})
	h := NewWatchlistHandler(uc)
	r.GET("/watchlist", h.List)
	r.POST("/watchlist", h.Add)
	r.DELETE("/watchlist/:symbol", h.Remove)
	return r
}

func TestWatchlistList(t *testing.T) {
	uc := &stubWatchlistUsecase{
		listFn: func(_ context.Context, ownerID uint) ([]entity.WatchlistEntry, error) {
			assert.Equal(t, uint(1), ownerID)
			return []entity.WatchlistEntry{{Symbol: "INFY.NS"}, {Symbol: "TCS.NS"}}, nil
		},
	}
	r := setupWatchlistRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/watchlist", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "INFY.NS", items[0]["symbol"])
}

func TestWatchlistAdd_Created(t *testing.T) {
	uc := &stubWatchlistUsecase{
		addFn: func(_ context.Context, _ uint, rawSymbol string) (*entity.WatchlistEntry, error) {
			assert.Equal(t, "tcs", rawSymbol)
			return &entity.WatchlistEntry{OwnerID: 1, Symbol: "TCS.NS"}, nil
		},
	}
	r := setupWatchlistRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(`{"symbol":"tcs"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"symbol":"TCS.NS"}`, w.Body.String())
}

func TestWatchlistAdd_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "invalid symbol", err: symbol.ErrInvalid, expectedStatus: http.StatusBadRequest},
		{name: "duplicate", err: usecase.ErrAlreadyOnWatchlist, expectedStatus: http.StatusBadRequest},
		{name: "storage failure", err: fmt.Errorf("db gone"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubWatchlistUsecase{
				addFn: func(context.Context, uint, string) (*entity.WatchlistEntry, error) {
					return nil, tc.err
				},
			}
			r := setupWatchlistRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(`{"symbol":"tcs"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestWatchlistAdd_MissingSymbol(t *testing.T) {
	r := setupWatchlistRouter(&stubWatchlistUsecase{
		addFn: func(context.Context, uint, string) (*entity.WatchlistEntry, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchlistRemove(t *testing.T) {
	var removed string
	uc := &stubWatchlistUsecase{
		removeFn: func(_ context.Context, _ uint, rawSymbol string) error {
			removed = rawSymbol
			return nil
		},
	}
	r := setupWatchlistRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/watchlist/TCS.NS", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TCS.NS", removed)
	assert.JSONEq(t, `{"message":"stock removed"}`, w.Body.String())
}

// Removing a symbol that is not on the list is still a 200; the end
// state is the same either way.
func TestWatchlistRemove_AbsentSymbol(t *testing.T) {
	uc := &stubWatchlistUsecase{
		removeFn: func(context.Context, uint, string) error { return nil },
	}
	r := setupWatchlistRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/watchlist/NEVERADDED.NS", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
