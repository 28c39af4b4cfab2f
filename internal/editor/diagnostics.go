package editor

// DiagnosticSeverity is an ordinal level, error highest.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	default:
		return "hint"
	}
}

// Range is a 0-based character range inside a document.
type Range struct {
	StartLine int `json:"startLine"`
	StartChar int `json:"startChar"`
	EndLine   int `json:"endLine"`
	EndChar   int `json:"endChar"`
}

// Diagnostic is one editor-surfaced annotation.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Message  string             `json:"message"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source,omitempty"`
}

// DiagnosticsPublisher delivers the full diagnostic set for one document to
// the editor client. An empty slice clears the document's diagnostics.
type DiagnosticsPublisher interface {
	PublishDiagnostics(path string, diags []Diagnostic)
}
