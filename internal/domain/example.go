package domain

// CanonicalExample is a stored program template keyed by
// (language, device, name). Read-only to this service.
type CanonicalExample struct {
	ID         int64  `json:"id"`
	Language   string `json:"language"`
	Device     string `json:"device"`
	Name       string `json:"name"`
	TargetCode string `json:"targetCode"`
}

// CompiledCommand is the engine-facing result of one webhook request.
// Exactly one of the three shapes is set: Program (fixed builtin), Text
// (raw passthrough), or ExampleID+Code+Entities (compiled intent).
type CompiledCommand struct {
	Program string `json:"program,omitempty"`

	Text string `json:"text,omitempty"`

	ExampleID int64              `json:"exampleId,omitempty"`
	Code      string             `json:"code,omitempty"`
	Entities  map[string]*Entity `json:"entities,omitempty"`
}
