package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"evzone/backend/libs/access"
)

func str(v string) *string { return &v }

func TestStoreStartsAtDefault(t *testing.T) {
	assert.Equal(t, access.DefaultScope(), NewStore().Get())
}

func TestSetMergesAndNotifies(t *testing.T) {
	s := NewStore()
	var seen []access.Scope
	unsubscribe := s.Subscribe(func(sc access.Scope) { seen = append(seen, sc) })

	got := s.Set(access.ScopePatch{Region: str("EUROPE")})
	assert.Equal(t, "EUROPE", got.Region)
	assert.Equal(t, access.All, got.OrgID)

	got = s.Set(access.ScopePatch{OrgID: str("org-unknown")})
	assert.Equal(t, "EUROPE", got.Region)
	assert.Equal(t, "org-unknown", got.OrgID)
	assert.Equal(t, got, s.Get())

	assert.Len(t, seen, 2)
	assert.Equal(t, got, seen[1])

	unsubscribe()
	s.Set(access.ScopePatch{StationID: str("ST-1")})
	assert.Len(t, seen, 2)
}

func TestSubscriberReadsUpdatedScope(t *testing.T) {
	s := NewStore()
	var observed string
	s.Subscribe(func(access.Scope) { observed = s.Get().Region })
	s.Set(access.ScopePatch{Region: str("ASIA")})
	assert.Equal(t, "ASIA", observed)
}
