package diag

import (
	"fmt"
	"io"
)

// Notifier shows a short failure message to the user. Full details always
// go to the durable log; the notification only points there.
type Notifier interface {
	Notify(title, message string)
}

// ConsoleNotifier prints notifications to a terminal stream, usually stderr.
type ConsoleNotifier struct {
	w       io.Writer
	program string
	logPath string
}

// NewConsoleNotifier creates a notifier that refers the user to logPath.
func NewConsoleNotifier(w io.Writer, logPath string) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, program: DefaultProgram, logPath: logPath}
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(title, message string) {
	where := "the log"
	if n.logPath != "" {
		where = n.logPath
	}
	fmt.Fprintf(n.w, "%s: %s said: %q\nSee %s for more details.\n", title, n.program, message, where)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(string, string) {}
