package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sistema-academico/academico-console/internal/permission"
	_ "github.com/sistema-academico/academico-console/testing"
)

func newTestGate() *Gate {
	registry := permission.NewRegistry()
	registry.Populate([]permission.Resource{
		{Name: "courses", Label: "Cursos", Actions: []string{"read", "create"}},
	})
	return NewGate(registry)
}

func TestCan(t *testing.T) {
	gate := newTestGate()

	require.True(t, gate.Can("courses", "read"))
	require.False(t, gate.Can("courses", "delete"))
	require.False(t, gate.Can("users", "read"))
}

func TestGateWithoutCheckerDeniesEverything(t *testing.T) {
	var gate *Gate
	require.False(t, gate.Can("courses", "read"))
	require.False(t, NewGate(nil).Can("courses", "read"))
}

func TestRender(t *testing.T) {
	gate := newTestGate()

	require.Equal(t, "ok", gate.Render("courses", "read", "ok", "nope", false))
	require.Equal(t, "nope", gate.Render("courses", "delete", "ok", "nope", false))
	require.Equal(t, "", gate.Render("courses", "delete", "ok", "", false))
	require.Equal(t,
		"Você não tem permissão para excluir este recurso.",
		gate.Render("courses", "delete", "ok", "nope", true))
}

func TestActionLabels(t *testing.T) {
	cases := map[string]string{
		"create":        "criar",
		"update":        "editar",
		"delete":        "excluir",
		"read":          "visualizar",
		"export":        "acessar",
		"enrollSubject": "acessar",
		"anything-else": "acessar",
	}
	for action, label := range cases {
		require.Equal(t, label, ActionLabel(action), action)
	}
}
