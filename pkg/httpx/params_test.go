package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/vatcheck/pkg/httpx"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/vat/DE123456789/checks?"+rawQuery, http.NoBody)
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, httpx.ClampInt(-3, 1, 10))
	require.Equal(t, 10, httpx.ClampInt(11, 1, 10))
	require.Equal(t, 5, httpx.ClampInt(5, 1, 10))
	require.Equal(t, 10, httpx.ClampInt(10, 1, 10))
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  httpx.Page
	}{
		{"", httpx.Page{Limit: 20}},
		{"limit=25&offset=10", httpx.Page{Limit: 25, Offset: 10}},
		{"offset=7", httpx.Page{Limit: 20, Offset: 7}},
		{"limit=0", httpx.Page{Limit: 1}},
		{"limit=999", httpx.Page{Limit: 50}},
		{"limit=%2010%20", httpx.Page{Limit: 10}},
		{"limit=10&offset=-3", httpx.Page{Limit: 10}},
	}

	for _, tc := range cases {
		got, err := httpx.ParsePage(queryContext(tc.query), 20, 50)
		require.NoError(t, err, tc.query)
		require.Equal(t, tc.want, got, tc.query)
	}
}

func TestParsePage_DefaultAboveMax(t *testing.T) {
	t.Parallel()

	got, err := httpx.ParsePage(queryContext(""), 100, 50)
	require.NoError(t, err)
	require.Equal(t, 50, got.Limit)
}

func TestParsePage_NotANumber(t *testing.T) {
	t.Parallel()

	_, err := httpx.ParsePage(queryContext("limit=foo"), 20, 50)
	require.ErrorContains(t, err, `invalid limit "foo"`)

	_, err = httpx.ParsePage(queryContext("limit=5&offset=bar"), 20, 50)
	require.ErrorContains(t, err, `invalid offset "bar"`)

	_, err = httpx.ParsePage(queryContext("limit="), 20, 50)
	require.Error(t, err)
}
