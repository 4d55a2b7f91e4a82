package lasertag

/*------------------------------------------------------------------
 *
 * Purpose:	Diagnostic logging for the badge core.
 *
 *		Nothing in this file is required for correctness - the
 *		signal path and state machines have no logging dependency of
 *		their own. It exists so a bench session run through
 *		cmd/badgesim or cmd/badgerun has something readable to look
 *		at.
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide diagnostic logger. It defaults to Info
// level with color auto-detected from the output stream: on unless
// redirected.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "lasertag",
})

// SetLogLevel adjusts verbosity. cmd/badgesim exposes this as -d/--debug.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}
