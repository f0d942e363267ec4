package permission

// Resource is a named capability domain together with the actions the
// current principal may perform on it. The action set is specific to the
// current principal and session, not global metadata about the resource
// type.
type Resource struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Actions []string `json:"actions"`
}

// Well-known action names. The vocabulary is open-ended on the backend
// side; unknown action strings are matched as opaque values, so these
// constants exist only for the call sites the console has today.
const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionExport  = "export"
	ActionImport  = "import"
	ActionApprove = "approve"
	ActionReject  = "reject"

	ActionCreateSubject = "createSubject"
	ActionEnrollSubject = "enrollSubject"
	ActionListStudents  = "listStudents"
)
