package backendstub

import "github.com/sistema-academico/academico-console/internal/permission"

// grantsForRole is the stub's authorization table: the resource grants the
// whoami endpoint reports for each role, and the same table the stub's own
// handlers enforce.
func grantsForRole(role string) []permission.Resource {
	switch role {
	case "admin":
		return []permission.Resource{
			{Name: "users", Label: "Usuários", Actions: []string{"create", "read", "update", "delete"}},
			{Name: "courses", Label: "Cursos", Actions: []string{"create", "read", "update", "delete", "createSubject", "listStudents"}},
			{Name: "semesters", Label: "Semestres", Actions: []string{"create", "read", "update", "delete"}},
			{Name: "enrollments", Label: "Matrículas", Actions: []string{"read", "approve", "reject"}},
			{Name: "reports", Label: "Relatórios", Actions: []string{"read", "export"}},
		}
	case "coordinator":
		return []permission.Resource{
			{Name: "users", Label: "Usuários", Actions: []string{"read"}},
			{Name: "courses", Label: "Cursos", Actions: []string{"read", "update", "createSubject", "listStudents"}},
			{Name: "semesters", Label: "Semestres", Actions: []string{"create", "read", "update"}},
			{Name: "enrollments", Label: "Matrículas", Actions: []string{"read", "approve", "reject"}},
		}
	case "teacher":
		return []permission.Resource{
			{Name: "courses", Label: "Cursos", Actions: []string{"read", "listStudents"}},
			{Name: "semesters", Label: "Semestres", Actions: []string{"read"}},
			{Name: "enrollments", Label: "Matrículas", Actions: []string{"read"}},
		}
	case "student":
		return []permission.Resource{
			{Name: "courses", Label: "Cursos", Actions: []string{"read"}},
			{Name: "semesters", Label: "Semestres", Actions: []string{"read"}},
			{Name: "enrollments", Label: "Matrículas", Actions: []string{"read", "enrollSubject"}},
			// Sent with no actions on purpose: the client must list it
			// without granting anything on it.
			{Name: "reports", Label: "Relatórios", Actions: []string{}},
		}
	default:
		return nil
	}
}

func roleHasAction(role, resource, action string) bool {
	for _, res := range grantsForRole(role) {
		if res.Name != resource {
			continue
		}
		for _, a := range res.Actions {
			if a == action {
				return true
			}
		}
		return false
	}
	return false
}
