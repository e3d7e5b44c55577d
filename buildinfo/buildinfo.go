package buildinfo

// Set at build time with -ldflags "-X github.com/smartcv/go-smartcv/buildinfo.<Var>=<value>".
var (
	GitCommit  = "n/a"
	GitBranch  = "n/a"
	GitState   = "n/a"
	GitSummary = "n/a"
	BuildDate  = "n/a"
	Version    = "n/a"
)

// Summary provides a summary of git information in the binary.
type Summary struct {
	GitCommit  string `json:"git_commit"`
	GitBranch  string `json:"git_branch"`
	GitState   string `json:"git_state"`
	GitSummary string `json:"git_summary"`
	BuildDate  string `json:"build_date"`
	Version    string `json:"binary_version"`
}

// GetSummary returns a summary of git information.
func GetSummary() Summary {
	return Summary{
		GitCommit:  GitCommit,
		GitBranch:  GitBranch,
		GitState:   GitState,
		GitSummary: GitSummary,
		BuildDate:  BuildDate,
		Version:    Version,
	}
}
