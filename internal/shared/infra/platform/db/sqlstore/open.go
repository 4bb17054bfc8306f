package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	_ "modernc.org/sqlite"             // driver "sqlite", sin cgo
)

// Open abre la base de datos del driver indicado y comprueba la conexión.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("could not open %s: %w", d.Name, err)
	}

	if d == SQLite {
		// Una sola conexión: ":memory:" es una base distinta por conexión y SQLite serializa escrituras.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, Dialect{}, fmt.Errorf("could not ping %s: %w", d.Name, err)
	}
	return db, d, nil
}

// Placeholders devuelve "?, ?, ?" o "$1, $2, $3" para n argumentos.
func (d Dialect) Placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += d.Placeholder(i)
	}
	return out
}
