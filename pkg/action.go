package pkg

import "strings"

type Action string

const (
	ActionRestart Action = "Restart"
	ActionQuit    Action = "Quit"
)

// ParseAction matches a command name case-insensitively.
func ParseAction(s string) (Action, bool) {
	for _, a := range []Action{ActionRestart, ActionQuit} {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, true
		}
	}
	return "", false
}
