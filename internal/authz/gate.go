package authz

import "github.com/sistema-academico/academico-console/internal/permission"

// Checker answers point permission queries against the current grant set.
// *permission.Registry satisfies it.
type Checker interface {
	HasPermission(resource, action string) bool
}

// Gate is the check-and-branch primitive used at every protected
// affordance. It is pure with respect to the registry snapshot at call
// time: no network, no side effects, safe to call at any frequency.
type Gate struct {
	checker Checker
}

// NewGate constructs a Gate over the given checker.
func NewGate(c Checker) *Gate {
	return &Gate{checker: c}
}

// Can reports whether the current principal may perform action on the
// named resource. A gate without a checker denies everything.
func (g *Gate) Can(resource, action string) bool {
	if g == nil || g.checker == nil {
		return false
	}
	return g.checker.HasPermission(resource, action)
}

// Render returns permitted when the action is granted. When denied it
// returns an explicit denial notice if showDenial is set, otherwise the
// fallback (which defaults to nothing).
func (g *Gate) Render(resource, action, permitted, fallback string, showDenial bool) string {
	if g.Can(resource, action) {
		return permitted
	}
	if showDenial {
		return DenialNotice(action)
	}
	return fallback
}

// ActionLabel maps an action name to its human-readable pt-BR verb. The
// mapping is fixed; anything outside it falls back to the generic
// "acessar".
func ActionLabel(action string) string {
	switch action {
	case permission.ActionCreate:
		return "criar"
	case permission.ActionUpdate:
		return "editar"
	case permission.ActionDelete:
		return "excluir"
	case permission.ActionRead:
		return "visualizar"
	default:
		return "acessar"
	}
}

// DenialNotice is the user-facing message shown when an affordance is
// denied and the caller asked for an explicit notice.
func DenialNotice(action string) string {
	return "Você não tem permissão para " + ActionLabel(action) + " este recurso."
}
