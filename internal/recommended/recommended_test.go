package recommended

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/presenter"
)

func recommendations(n int) string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		// scores deliberately not sorted
		items = append(items, fmt.Sprintf(`{"id":%d,"name":"p%d","currentPrice":15000,"stock":1,"similarity_score":0.%d5}`, i, i, i%9))
	}
	return `{"error":false,"message":"ok","data":[` + strings.Join(items, ",") + `]}`
}

func newService(t *testing.T, body string) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getRecommendProducts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{BaseURL: srv.URL, RetryDelay: -1}))
}

func TestMatchPercent(t *testing.T) {
	require.Equal(t, 87, Item{SimilarityScore: 0.874}.MatchPercent())
	require.Equal(t, 0, Item{}.MatchPercent())
}

func TestService_KeepsBackendOrder(t *testing.T) {
	svc := newService(t, recommendations(4))
	res := svc.ForProduct(context.Background(), 1)
	require.Equal(t, backend.Ok, res.Kind)
	require.Len(t, res.Value, 4)
	for i, it := range res.Value {
		require.Equal(t, i+1, it.ID)
	}
	require.Equal(t, 0.15, res.Value[0].SimilarityScore)
}

func TestHandler_Limits(t *testing.T) {
	app := fiber.New()
	NewHandler(newService(t, recommendations(8)), nil).RegisterPublicRoutes(app)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/v1/product/1/recommendations", DefaultMaxItems},
		{"/api/v1/product/1/recommendations?limit=2", 2},
		{"/api/v1/product/1/recommendations?all=true", 8},
	}
	for _, tt := range tests {
		res, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		var got response
		require.NoError(t, json.Unmarshal(raw, &got))
		require.Equal(t, presenter.Ready, got.Status)
		require.Len(t, got.Data, tt.want, tt.target)
		require.Equal(t, 8, got.Total)
		require.Equal(t, "15% match", got.Data[0].MatchText)
		require.Equal(t, "Rp 15.000", got.Data[0].PriceText)
	}
}

func TestHandler_Empty(t *testing.T) {
	app := fiber.New()
	NewHandler(newService(t, `{"error":false,"message":"ok","data":null}`), nil).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/product/1/recommendations", nil), -1)
	require.NoError(t, err)
	defer res.Body.Close()
	var got response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	require.Equal(t, presenter.Blank, got.Status)
	require.Zero(t, got.Total)
}
