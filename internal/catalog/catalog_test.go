package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, task := range Tasks() {
		require.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		assert.NotEmpty(t, task.Category)
		assert.NotEmpty(t, task.Text)
	}
	assert.Len(t, seen, 33)
}

func TestForRole(t *testing.T) {
	front := ForRole(FrontDesk)
	require.Len(t, front, 33)
	assert.Equal(t, "at-1", front[0].ID)
	assert.Equal(t, "Abertura", front[0].Category)
	assert.Equal(t, "at-33", front[32].ID)

	assert.Empty(t, ForRole(Finance))
	assert.Empty(t, ForRole(ClinicalAssistant))
}

func TestTasksReturnsCopy(t *testing.T) {
	all := Tasks()
	all[0].Text = "changed"
	task, ok := Lookup(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "changed", task.Text)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, []Role{FrontDesk, Finance, ClinicalAssistant}, Roles())
	assert.Equal(t, "Atendente", FrontDesk.String())
	assert.Equal(t, "Financeiro", Finance.String())
	assert.Equal(t, "ASB", ClinicalAssistant.String())
	assert.Equal(t, "Role(9)", Role(9).String())

	for _, r := range Roles() {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
		assert.NotEmpty(t, r.Color())
	}
	_, err := ParseRole("Dentista")
	assert.Error(t, err)
}

func TestGuidelines(t *testing.T) {
	assert.NotEmpty(t, Guidelines(FrontDesk))
	assert.Nil(t, Guidelines(Finance))
}
