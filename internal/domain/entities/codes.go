package entities

// CodeEntry is the single canonical shape for a billing or diagnosis code.
// Procedure (CPT) entries carry a cost; diagnosis (ICD-10) entries leave it
// empty.
type CodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Cost        string `json:"cost,omitempty"`
}

// DefaultCodeBucket is the fallback key used when a specialty has no
// entry in a code table.
const DefaultCodeBucket = "default"
