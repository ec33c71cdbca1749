package fetch

import (
	"fmt"
	"io"
)

// About prints the project blurb shown by --about.
func About(w io.Writer, version string) error {
	_, err := fmt.Fprintf(w, `starfetch v%s: host diagnostics for the terminal

Collects hostname, OS, kernel, uptime, package counts, CPU, memory, swap
and disk usage, falling back across OS APIs and package managers so a
missing tool never breaks the report.

Thanks to all users!
`, version)
	return err
}
