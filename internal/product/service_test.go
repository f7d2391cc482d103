package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
)

// fakeBackend answers every path from routes and remembers what was asked.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]string
	seen   []string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.seen = append(f.seen, r.URL.RequestURI())
	body, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (f *fakeBackend) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

func newService(t *testing.T, routes map[string]string) (*Service, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{routes: routes}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return NewService(backend.New(backend.Config{BaseURL: srv.URL, RetryDelay: -1})), fb
}

const twoProducts = `{"error":false,"message":"ok","data":[
	{"id":1,"name":"Kopi Susu","currentPrice":75000,"originalPrice":100000,"imgUrl":"a.png","stock":5,"categoryId":2,"discount":25},
	{"id":2,"name":"Teh Tarik","currentPrice":10000,"originalPrice":20000,"imgUrl":"b.png","stock":0,"categoryId":2,"discount":50}
]}`

func TestService_List(t *testing.T) {
	svc, _ := newService(t, map[string]string{"/getAllProduct": twoProducts})
	res := svc.List(context.Background())
	require.Equal(t, backend.Ok, res.Kind)
	require.Len(t, res.Value, 2)
	require.Equal(t, "Kopi Susu", res.Value[0].Name)
	require.Equal(t, 75000.0, res.Value[0].CurrentPrice)
}

func TestService_SearchBlankListsAll(t *testing.T) {
	svc, fb := newService(t, map[string]string{"/getAllProduct": twoProducts})
	res := svc.Search(context.Background(), "   ")
	require.Equal(t, backend.Ok, res.Kind)
	require.Equal(t, []string{"/getAllProduct"}, fb.requests())
}

func TestService_SearchAndCategoryParams(t *testing.T) {
	svc, fb := newService(t, map[string]string{
		"/getAllProductsByName":    twoProducts,
		"/getAllProductByCategory": `{"error":false,"message":"ok","data":[]}`,
	})
	require.Equal(t, backend.Ok, svc.Search(context.Background(), " kopi ").Kind)
	require.Equal(t, backend.Empty, svc.ByCategory(context.Background(), 2).Kind)
	require.Equal(t, []string{
		"/getAllProductsByName?name=kopi",
		"/getAllProductByCategory?category=2",
	}, fb.requests())
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService(t, map[string]string{
		"/getProductById/1":   `{"error":false,"message":"ok","data":{"id":1,"name":"Kopi Susu","stock":5}}`,
		"/getProductById/7":   `{"error":false,"message":"ok","data":null}`,
		"/getProductById/999": `{"error":true,"message":"Product not found"}`,
	})

	p, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Kopi Susu", p.Name)

	_, err = svc.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, backend.ErrApplication)
	require.EqualError(t, err, "Product not found")
}

func TestService_ListKeepsLooselyTypedProducts(t *testing.T) {
	svc, _ := newService(t, map[string]string{"/getAllProduct": `{"error":false,"message":"ok","data":[
		{"id":1,"name":"Kopi Susu","currentPrice":"75000","originalPrice":100000,"stock":5,"discount":25,"rating":"4.5"},
		{"id":2,"name":"Teh Tarik","currentPrice":10000,"originalPrice":20000,"stock":3,"discount":50}
	]}`})

	res := svc.List(context.Background())
	require.Equal(t, backend.Ok, res.Kind)
	require.Len(t, res.Value, 2)
	require.Equal(t, 75000.0, res.Value[0].CurrentPrice)
	require.NotNil(t, res.Value[0].Rating)
	require.Equal(t, 4.5, *res.Value[0].Rating)

	require.Equal(t, []int{2, 1}, ids(Trending(res.Value, DefaultTrendingLimit)))
}
