package permission

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/sistema-academico/academico-console/testing"
)

func sampleGrants() []Resource {
	return []Resource{
		{Name: "courses", Label: "Cursos", Actions: []string{"read", "create", "createSubject"}},
		{Name: "semesters", Label: "Semestres", Actions: []string{"read"}},
		{Name: "reports", Label: "Relatórios", Actions: []string{}},
	}
}

func TestHasPermissionFailsClosed(t *testing.T) {
	r := NewRegistry()
	r.Populate(sampleGrants())

	require.True(t, r.HasPermission("courses", "read"))
	require.True(t, r.HasPermission("courses", "createSubject"))

	// Absent resource denies every action.
	require.False(t, r.HasPermission("users", "read"))
	// Present resource denies ungranted actions, exact match only.
	require.False(t, r.HasPermission("courses", "delete"))
	require.False(t, r.HasPermission("courses", "Read"))
	require.False(t, r.HasPermission("courses", "read*"))
}

func TestZeroActionResourceIsListedButDeniesEverything(t *testing.T) {
	r := NewRegistry()
	r.Populate(sampleGrants())

	for _, action := range []string{"read", "create", "update", "delete", "export"} {
		require.False(t, r.HasPermission("reports", action))
	}

	var names []string
	for _, res := range r.AvailableResources() {
		names = append(names, res.Name)
	}
	require.Contains(t, names, "reports")
}

func TestPopulateRoundTrip(t *testing.T) {
	r := NewRegistry()
	grants := sampleGrants()
	r.Populate(grants)

	// Interleave point lookups; enumeration must be unaffected.
	r.HasPermission("semesters", "read")
	r.ResourceActions("courses")

	got := r.AvailableResources()
	require.Equal(t, grants, got)
}

func TestPopulateReplacesWholesale(t *testing.T) {
	r := NewRegistry()
	r.Populate(sampleGrants())
	r.Populate([]Resource{{Name: "users", Label: "Usuários", Actions: []string{"read"}}})

	require.True(t, r.HasPermission("users", "read"))
	// Nothing from the previous population survives.
	require.False(t, r.HasPermission("courses", "read"))
	require.Len(t, r.AvailableResources(), 1)
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	r.Populate(sampleGrants())
	r.Clear()

	require.Zero(t, r.Len())
	require.Empty(t, r.AvailableResources())
	require.False(t, r.HasPermission("courses", "read"))
}

func TestResourceActions(t *testing.T) {
	r := NewRegistry()
	r.Populate(sampleGrants())

	require.Equal(t, []string{"read", "create", "createSubject"}, r.ResourceActions("courses"))
	require.Empty(t, r.ResourceActions("missing"))
}
