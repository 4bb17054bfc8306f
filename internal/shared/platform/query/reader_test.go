package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersReader_PerFieldIsolation(t *testing.T) {
	reader := NewFiltersReader().
		ReadString("title", []string{"ne:A long enough title"}, true, Tag[string]("min=10")).
		ReadString("email", []string{"not-an-email"}, false, EmailStrict())

	filters, err := reader.Eval()
	assert.Nil(t, filters)

	var report ErrorReport
	require.ErrorAs(t, err, &report)
	assert.NotContains(t, report, "title")
	require.Len(t, report["email"], 1)
	assert.Equal(t, "email_invalid_format", report["email"][0].Code)
}

func TestFiltersReader_IdentifierListFailureDiscardsEverything(t *testing.T) {
	reader := NewFiltersReader().
		ReadNumeric("locationLat", []string{"gte:10"}).
		ReadIdentifier("id", []string{"in:507f1f77bcf86cd799439011,zzz"})

	filters, err := reader.Eval()
	assert.Nil(t, filters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id:")
}

func TestFiltersReader_SkipsEmptyFields(t *testing.T) {
	reader := NewFiltersReader().
		ReadString("title", nil, true).
		ReadBoolean("isAdmin", []string{}).
		ReadDateTime("createdAt", []string{"gt:2024-01-01T00:00:00Z"})

	filters, err := reader.Eval()
	require.NoError(t, err)
	assert.Len(t, filters, 1)

	dt, ok := filters["createdAt"].(DateTimeCriteria)
	require.True(t, ok)
	assert.NotNil(t, dt.Gt)
}

func TestFiltersReader_ContinuesPastFailures(t *testing.T) {
	reader := NewFiltersReader().
		ReadString("name", []string{"eq:a", "eq:b"}, false).
		ReadNumeric("locationLng", []string{"gt:abc"}).
		ReadBoolean("isAdmin", []string{"maybe"})

	_, err := reader.Eval()
	var report ErrorReport
	require.ErrorAs(t, err, &report)
	assert.Len(t, report, 3)
	assert.Equal(t, CodeDuplicateOperator, report["name"][0].Code)
	assert.Equal(t, CodeNotANumber, report["locationLng"][0].Code)
	assert.Equal(t, CodeInvalidBoolean, report["isAdmin"][0].Code)
}

func TestErrorReport_Error(t *testing.T) {
	report := ErrorReport{}
	report.Add("b", NewFieldError("x", "second"))
	report.Add("a", NewFieldError("y", "first"))

	assert.Equal(t, "invalid query: a: first; b: second", report.Error())
}
