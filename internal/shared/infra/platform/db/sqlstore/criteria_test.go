package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

var userColumns = Columns{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"isAdmin":   "is_admin",
	"createdAt": "created_at",
}

func TestBuildWhere_Postgres(t *testing.T) {
	filters, err := query.NewFiltersReader().
		ReadString("name", []string{"text:ana", "ne:bob"}, true).
		ReadString("email", []string{"in:a@x.com,b@x.com"}, false).
		ReadBoolean("isAdmin", []string{"true"}).
		Eval()
	require.NoError(t, err)

	where, args, err := BuildWhere(Postgres, filters, userColumns)
	require.NoError(t, err)

	assert.Equal(t, " WHERE email IN ($1, $2) AND is_admin = $3 AND name <> $4 AND name ILIKE $5", where)
	assert.Equal(t, []interface{}{"a@x.com", "b@x.com", true, "bob", "%ana%"}, args)
}

func TestBuildWhere_SQLite(t *testing.T) {
	filters, err := query.NewFiltersReader().
		ReadDateTime("createdAt", []string{"gte:2024-01-01T00:00:00Z"}).
		ReadIdentifier("id", []string{"nin:507f1f77bcf86cd799439011"}).
		ReadString("email", []string{"exists:false"}, false).
		Eval()
	require.NoError(t, err)

	where, args, err := BuildWhere(SQLite, filters, userColumns)
	require.NoError(t, err)

	assert.Equal(t, " WHERE created_at >= ? AND email IS NULL AND id NOT IN (?)", where)
	assert.Equal(t, []interface{}{"2024-01-01T00:00:00.000000000Z", "507f1f77bcf86cd799439011"}, args)
}

func TestBuildWhere_RegexUnsupportedOnSQLite(t *testing.T) {
	filters, err := query.NewFiltersReader().ReadString("name", []string{"regex:^a"}, false).Eval()
	require.NoError(t, err)

	_, _, err = BuildWhere(SQLite, filters, userColumns)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)

	where, args, err := BuildWhere(Postgres, filters, userColumns)
	require.NoError(t, err)
	assert.Equal(t, " WHERE name ~ $1", where)
	assert.Equal(t, []interface{}{"^a"}, args)
}

func TestBuildWhere_UnknownColumn(t *testing.T) {
	filters, err := query.NewFiltersReader().ReadString("password", []string{"x"}, false).Eval()
	require.NoError(t, err)

	_, _, err = BuildWhere(SQLite, filters, userColumns)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestBuildWhere_Empty(t *testing.T) {
	where, args, err := BuildWhere(SQLite, nil, userColumns)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestBuildOrderByAndLimit(t *testing.T) {
	order, err := BuildOrderBy([]query.Sort{{Field: "createdAt", Desc: true}, {Field: "name"}}, userColumns)
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY created_at DESC, name ASC", order)

	_, err = BuildOrderBy([]query.Sort{{Field: "nope"}}, userColumns)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	q := query.NewFindQuery[string, string](2, 25, nil, nil, nil)
	assert.Equal(t, " LIMIT 25 OFFSET 25", BuildLimitOffset(q))
}

func TestDialect(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, "$3", d.Placeholder(3))

	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "?", d.Placeholder(3))

	_, err = DialectFor("oracle")
	assert.Error(t, err)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	parsed, err := SQLite.ParseTime(SQLite.TimeValue(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", Postgres.Placeholders(3))
	assert.Equal(t, "?, ?", SQLite.Placeholders(2))
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, d, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, SQLite, d)

	_, _, err = Open(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestDialect_CapabilitiesAreIndependent(t *testing.T) {
	d := Dialect{Name: "custom", regex: true}
	assert.Equal(t, "?", d.Placeholder(1))
	assert.Equal(t, "LIKE", d.likeOperator())

	d = Dialect{Name: "custom", numbered: true}
	assert.Equal(t, "$2", d.Placeholder(2))
	assert.Equal(t, "LIKE", d.likeOperator())

	assert.Equal(t, "ILIKE", Postgres.likeOperator())
	assert.Equal(t, "LIKE", SQLite.likeOperator())
}
