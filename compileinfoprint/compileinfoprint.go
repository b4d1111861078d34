// compileinfoprint is imported by commands for the side effect of printing
// their build banner to os.Stderr at startup. Setting SRNIEL_QUIET to any
// non-empty value suppresses it, for scripted runs that keep stderr clean.
package compileinfoprint

import (
	"io"
	"os"

	"github.com/carbocation/srniel/compileinfo"
)

// QuietEnv names the environment variable that silences the banner.
const QuietEnv = "SRNIEL_QUIET"

func init() {
	banner(os.Stderr, os.Getenv)
}

func banner(w io.Writer, getenv func(string) string) bool {
	if getenv(QuietEnv) != "" {
		return false
	}
	compileinfo.Fprint(w)
	return true
}
