package dto

// MutationMeta reports whether a mutation changed the store. Silent no-ops carry Changed=false.
type MutationMeta struct {
	Changed bool   `json:"changed"`
	Outcome string `json:"outcome,omitempty"`
	Version uint64 `json:"version"`
}

// Map renders the meta block for the response envelope.
func (m MutationMeta) Map() map[string]interface{} {
	out := map[string]interface{}{"changed": m.Changed, "version": m.Version}
	if m.Outcome != "" {
		out["outcome"] = m.Outcome
	}
	return out
}
