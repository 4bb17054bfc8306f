package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

type sortKey string
type fieldKey string

var testSchema = query.Schema[sortKey, fieldKey]{
	Filters: []query.FilterField{
		query.StringField("title", true, query.Tag[string]("min=3")),
		query.NumericField("locationLat", query.Tag[float64]("gte=-90,lte=90")),
	},
	Sortable:    []sortKey{"title", "-title"},
	DefaultSort: []sortKey{"-title"},
	Selectable:  []fieldKey{"id", "title"},
	MaxSize:     10,
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))

	echo := func(c *gin.Context) {
		q, ok := GetFindQuery(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"page":    q.Page,
			"size":    q.Size,
			"fields":  q.Fields,
			"filters": len(q.Filters),
			"sort":    q.Sort[0].String(),
		})
	}
	r.GET("/items", FiltersFromQuery(testSchema), echo)
	r.POST("/items/query", FiltersFromBody(testSchema), echo)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFiltersFromQuery_Success(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items?page=2&size=5&sort=title&fields=id,title&title=ne:abc&title=regex:^x&locationLat=gte:10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(5), body["size"])
	assert.Equal(t, float64(2), body["filters"])
	assert.Equal(t, "title", body["sort"])
	assert.Equal(t, []interface{}{"id", "title"}, body["fields"])
}

func TestFiltersFromQuery_Unprocessable(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items?title=eq:abc&title=ne:abcd&locationLat=gt:200&size=99", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid query parameters", body["error"])

	details := body["details"].(map[string]interface{})
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "locationLat")
	assert.Contains(t, details, "size")

	first := details["title"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, query.CodeIncompatibleOperators, first["code"])
}

func TestFiltersFromBody_Success(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	payload := `{"page": 1, "size": 3, "fields": ["title"], "title": ["text:plaza"], "locationLat": "lte:45"}`
	req := httptest.NewRequest(http.MethodPost, "/items/query", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(3), body["size"])
	assert.Equal(t, float64(2), body["filters"])
	assert.Equal(t, "-title", body["sort"])
}

func TestFiltersFromBody_EmptyBodyUsesDefaults(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/query", strings.NewReader(""))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["size"])
}

func TestFiltersFromBody_WrongShape(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/query", strings.NewReader(`{"title": {"eq": "x"}}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decode(t, w)["details"].(map[string]interface{})
	assert.Contains(t, details, "title")
}

func TestFiltersFromBody_InvalidJSON(t *testing.T) {
	r := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/query", strings.NewReader(`{"title":`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectFields(t *testing.T) {
	type location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	type place struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Location location `json:"location"`
	}
	items := []place{{ID: "1", Title: "A", Location: location{Lat: 1, Lng: 2}}}

	got, err := SelectFields(items, []string{"id", "location.lat", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		{"id": "1", "location": map[string]interface{}{"lat": float64(1)}},
	}, got)

	same, err := SelectFields(items, nil)
	require.NoError(t, err)
	assert.Equal(t, items, same)

	single, err := SelectFields(items[0], []string{"title"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"title": "A"}, single)
}

func TestBind_ValidationErrorsUseJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/things", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required,min=2"`
		}
		if !Bind(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"name":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Details map[string][]query.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Details["name"], 1)
	assert.Equal(t, "min", body.Details["name"][0].Code)
	assert.Equal(t, "name must be at least 2 characters in length", body.Details["name"][0].Message)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
