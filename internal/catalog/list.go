package catalog

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
)

// List formats accepted by WriteList.
const (
	FormatNormal   = "normal"
	FormatFullname = "fullname"
)

// WriteList prints paths to w. FormatFullname writes one full path per line;
// FormatNormal writes a "dir:" header each time the directory changes,
// followed by the base names indented by two spaces.
func WriteList(w io.Writer, paths []string, format string) error {
	bw := bufio.NewWriter(w)
	switch format {
	case FormatFullname:
		for _, p := range paths {
			fmt.Fprintln(bw, p)
		}
	case FormatNormal, "":
		dir := ""
		for i, p := range paths {
			if d := filepath.Dir(p); i == 0 || d != dir {
				dir = d
				fmt.Fprintf(bw, "%s:\n", dir)
			}
			fmt.Fprintf(bw, "  %s\n", filepath.Base(p))
		}
	default:
		return fmt.Errorf("unknown list format %q", format)
	}
	return bw.Flush()
}
