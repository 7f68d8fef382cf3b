package version

import (
	"fmt"

	goversion "go.hein.dev/go-version"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func String() string {
	base := Version
	if Commit != "" {
		base += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		base += fmt.Sprintf(" %s", Date)
	}
	return base
}

// Output renders the version as json or yaml, or just the number when short.
func Output(short bool, format string) string {
	commit, date := Commit, Date
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	return goversion.FuncWithOutput(short, Version, commit, date, format)
}
