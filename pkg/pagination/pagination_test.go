package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := parseQuery(t, "")
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, p)
}

func TestParseComputesOffset(t *testing.T) {
	p := parseQuery(t, "page=3&limit=25")
	assert.Equal(t, Params{Page: 3, Limit: 25, Offset: 50}, p)
}

func TestParseClampsBadValues(t *testing.T) {
	assert.Equal(t, 1, parseQuery(t, "page=-4").Page)
	assert.Equal(t, 20, parseQuery(t, "limit=0").Limit)
	assert.Equal(t, MaxLimit, parseQuery(t, "limit=5000").Limit)
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, parseQuery(t, "page=abc&limit=xyz"))
}

func TestEnvelope(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	env := p.Envelope("assets", []string{"a", "b"}, 23)

	assert.Equal(t, []string{"a", "b"}, env["assets"])
	assert.Equal(t, int64(23), env["total"])
	assert.Equal(t, 2, env["page"])
	assert.Equal(t, 10, env["limit"])
	assert.Equal(t, int64(3), env["total_pages"])
}

func TestTotalPages(t *testing.T) {
	p := Params{Page: 1, Limit: 20}
	assert.Equal(t, int64(0), p.TotalPages(0))
	assert.Equal(t, int64(1), p.TotalPages(1))
	assert.Equal(t, int64(1), p.TotalPages(20))
	assert.Equal(t, int64(2), p.TotalPages(21))
}
