package sqlstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/davicafu/hexaplaces/internal/shared/infra/utils"
)

// Formato de ancho fijo: en SQLite las fechas se comparan como texto.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Dialect recoge lo que cambia entre SQLite y PostgreSQL.
type Dialect struct {
	Name     string
	Driver   string // nombre registrado en database/sql
	numbered bool   // $1, $2... en lugar de ?
	ilike    bool   // LIKE sin distinguir mayúsculas
	regex    bool   // operador ~
}

var (
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite"}
	Postgres = Dialect{Name: "postgres", Driver: "pgx", numbered: true, ilike: true, regex: true}
)

// DialectFor elige el dialecto por nombre de driver ("sqlite" | "pgx").
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "pgx", "postgres":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported SQL driver %q", driver)
	}
}

// Placeholder devuelve el marcador del n-ésimo argumento (desde 1).
func (d Dialect) Placeholder(n int) string {
	return utils.Ternary(d.numbered, "$"+strconv.Itoa(n), "?")
}

func (d Dialect) likeOperator() string {
	return utils.Ternary(d.ilike, "ILIKE", "LIKE")
}

// TimeValue prepara un time.Time como argumento del driver.
func (d Dialect) TimeValue(t time.Time) interface{} {
	if d == SQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// ParseTime interpreta lo que el driver devuelve para una columna de fecha.
func (d Dialect) ParseTime(v interface{}) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case string:
		return time.Parse(time.RFC3339Nano, val)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(val))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}
