package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
)

func TestNewUser_NormalizesEmail(t *testing.T) {
	u := NewUser("Ana", "  Ana@Example.COM ", false)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, u.ID.Hex(), u.PartitionKey())
}

func TestUser_Patch(t *testing.T) {
	u := NewUser("Ana", "ana@example.com", false)
	u.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	before := u.UpdatedAt

	admin := true
	email := "ANA@mail.org"
	u.Patch(UserPatch{Email: &email, IsAdmin: &admin})

	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@mail.org", u.Email)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.UpdatedAt.After(before))
}

func TestQuerySchema(t *testing.T) {
	schema := NewQuerySchema(20)

	tests := []struct {
		name      string
		filters   map[string][]string
		errFields []string
	}{
		{
			name:    "filtros válidos",
			filters: map[string][]string{"name": {"regex:^An"}, "isAdmin": {"yes"}, "email": {"ne:a@b.com"}},
		},
		{
			name:      "nombre corto y email sin tld",
			filters:   map[string][]string{"name": {"A"}, "email": {"ana@example"}},
			errFields: []string{"name", "email"},
		},
		{
			name:      "text no permitido en name",
			filters:   map[string][]string{"name": {"text:ana"}},
			errFields: []string{"name"},
		},
		{
			name:      "booleano inválido",
			filters:   map[string][]string{"isAdmin": {"maybe"}},
			errFields: []string{"isAdmin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := schema.Read(query.RawQuery{Filters: tt.filters})
			if len(tt.errFields) == 0 {
				require.NoError(t, err)
				assert.Len(t, q.Filters, len(tt.filters))
				assert.Equal(t, []query.Sort{{Field: "createdAt", Desc: true}}, q.Sort)
				return
			}

			var report query.ErrorReport
			require.ErrorAs(t, err, &report)
			assert.Len(t, report, len(tt.errFields))
			for _, f := range tt.errFields {
				assert.Contains(t, report, f)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	_, err := ParseID("zzz")
	assert.ErrorIs(t, err, ErrInvalidID)
}
