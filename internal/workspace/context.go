// Package workspace aggregates lightweight workspace metadata into the
// snapshot that is posted to the panel when a conversation starts.
package workspace

// Context is the aggregate sent to the panel. It is built fresh on every
// collection and never persisted.
type Context struct {
	OpenFiles    []string          `json:"openFiles"`
	GitStatus    *GitStatus        `json:"gitStatus,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// GitStatus reports the first discovered repository's branch and
// uncommitted working-tree changes.
type GitStatus struct {
	Branch  string   `json:"branch"`
	Changes []Change `json:"changes"`
}

// Change is one uncommitted path with its single-letter status code.
type Change struct {
	URI    string `json:"uri"`
	Status string `json:"status"`
}

// DetachedBranch marks a repository whose HEAD is not on a branch.
const DetachedBranch = "(detached)"

// ManifestFilenames is the fixed, ordered set of dependency manifests
// checked at the first workspace folder's root.
var ManifestFilenames = []string{
	"package.json",
	"requirements.txt",
	"pyproject.toml",
	"go.mod",
	"Cargo.toml",
	"pom.xml",
	"build.gradle",
	"Gemfile",
	"composer.json",
}
