package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (service *stubService) Upsert(ctx context.Context, request UpsertRequest) (UpsertResult, error) {
	return UpsertResult{ID: 1}, nil
}

func (service *stubService) Query(ctx context.Context, request RangedQueryRequest) (RangedQueryResult, error) {
	return RangedQueryResult{Items: []ItemOut{}}, nil
}

func (service *stubService) AdvancedQuery(ctx context.Context, request AdvancedQueryRequest) (AdvancedQueryResult, error) {
	return AdvancedQueryResult{Items: []ItemOut{}, Page: 1, Limit: 10}, nil
}

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()
	RegisterRoutes(router, NewHandler(&stubService{}, testLog{}))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "post upsert",
			method:     http.MethodPost,
			path:       "/items/upsert",
			body:       `{"name":"Pen","category":"Stationary","price":1.5}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "post query",
			method:     http.MethodPost,
			path:       "/items/query",
			body:       `{}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "post advanced query",
			method:     http.MethodPost,
			path:       "/items/query/advanced",
			body:       `{"filters":{"price_range":[1,5]},"pagination":{"page":1,"limit":10},"sort":{"field":"price","order":"asc"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "get upsert is not allowed",
			method:     http.MethodGet,
			path:       "/items/upsert",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, req)

			require.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
