package web

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/pkg/utils"
)

const findQueryKey = "findQuery"

// QuerySchema es lo que el middleware necesita de un query.Schema.
type QuerySchema interface {
	FilterNames() []string
	Read(raw query.RawQuery) (*query.FindQuery, error)
}

// FiltersFromQuery lee filtros, página, tamaño, orden y selección de la query string.
// Cada campo filtrable admite el parámetro repetido: ?title=ne:foo&title=regex:^a
func FiltersFromQuery(schema QuerySchema) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := query.RawQuery{
			Page:    c.Query("page"),
			Size:    c.Query("size"),
			Sort:    splitCSV(c.QueryArray("sort")),
			Fields:  splitCSV(c.QueryArray("fields")),
			Filters: make(map[string][]string),
		}
		for _, name := range schema.FilterNames() {
			if vals := c.QueryArray(name); len(vals) > 0 {
				raw.Filters[name] = vals
			}
		}
		readQuery(c, schema, raw)
	}
}

// FiltersFromBody lee lo mismo de un cuerpo JSON:
// {"page": 1, "size": 10, "sort": ["-createdAt"], "fields": ["id"], "title": ["text:plaza"]}
func FiltersFromBody(schema QuerySchema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			utils.SendBadRequest(c, "invalid JSON body: "+err.Error())
			c.Abort()
			return
		}

		raw, err := rawQueryFromBody(body, schema.FilterNames())
		if err != nil {
			utils.SendUnprocessable(c, "Invalid query body", err)
			return
		}
		readQuery(c, schema, raw)
	}
}

// GetFindQuery recupera la consulta validada por el middleware.
func GetFindQuery(c *gin.Context) (*query.FindQuery, bool) {
	v, ok := c.Get(findQueryKey)
	if !ok {
		return nil, false
	}
	q, ok := v.(*query.FindQuery)
	return q, ok
}

func readQuery(c *gin.Context, schema QuerySchema, raw query.RawQuery) {
	q, err := schema.Read(raw)
	if err != nil {
		var report query.ErrorReport
		if errors.As(err, &report) {
			utils.SendUnprocessable(c, "Invalid query parameters", report)
			return
		}
		utils.SendBadRequest(c, err.Error())
		c.Abort()
		return
	}
	c.Set(findQueryKey, q)
	c.Next()
}

func rawQueryFromBody(body map[string]interface{}, filterNames []string) (query.RawQuery, query.ErrorReport) {
	report := make(query.ErrorReport)
	raw := query.RawQuery{Filters: make(map[string][]string)}

	raw.Page = scalarString(body["page"])
	raw.Size = scalarString(body["size"])

	for key, dest := range map[string]*[]string{"sort": &raw.Sort, "fields": &raw.Fields} {
		vals, err := stringList(body[key])
		if err != nil {
			report.Add(key, err)
			continue
		}
		*dest = splitCSV(vals)
	}

	for _, name := range filterNames {
		vals, err := stringList(body[name])
		if err != nil {
			report.Add(name, err)
			continue
		}
		if len(vals) > 0 {
			raw.Filters[name] = vals
		}
	}

	if len(report) > 0 {
		return raw, report
	}
	return raw, nil
}

// stringList acepta un string suelto o un array de escalares.
func stringList(v interface{}) ([]string, *query.FieldError) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s := scalarString(item)
			if s == "" && item != "" {
				return nil, query.NewFieldError("invalid_type", "expected an array of strings").
					WithParam("value", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		if s := scalarString(val); s != "" {
			return []string{s}, nil
		}
		return nil, query.NewFieldError("invalid_type", "expected a string or an array of strings")
	}
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return ""
	}
}

func splitCSV(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
