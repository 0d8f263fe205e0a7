package media

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/yt-summarize/pkg/executor"
)

// Requirement names an external binary the pipeline shells out to.
type Requirement struct {
	Name     string
	Command  string
	Optional bool
}

// Status reports whether a Requirement resolved on PATH.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckTools resolves each requirement through the executor.
func CheckTools(exec executor.Executor, reqs []Requirement) []Status {
	results := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		st := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		switch {
		case cmd == "":
			st.Detail = "command not configured"
		default:
			if _, err := exec.LookPath(cmd); err != nil {
				st.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				st.Available = true
			}
		}
		results = append(results, st)
	}
	return results
}

// MissingRequired returns the required tools that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, st := range statuses {
		if !st.Available && !st.Optional {
			missing = append(missing, st)
		}
	}
	return missing
}
