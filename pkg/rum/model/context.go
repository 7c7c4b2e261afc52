package model

// Context is the per-command snapshot of ambient identifiers. Parents derive
// it top-down before delegating to children; it is never mutated in place.
type Context struct {
	ApplicationID  string `json:"application_id"`
	SessionID      string `json:"session_id"`
	ActiveViewID   string `json:"active_view_id,omitempty"`
	ActiveViewURI  string `json:"active_view_uri,omitempty"`
	ActiveActionID string `json:"active_action_id,omitempty"`
	// ViewAttributes is the committed attribute bag of the active view, copied
	// so concurrent readers never alias scope-internal state.
	ViewAttributes map[string]string `json:"view_attributes,omitempty"`
}
