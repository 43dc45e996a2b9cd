package domain

import "fmt"

// Separator is written to the sink after every step that was executed.
const Separator = "--------------------------------------------------------------------------------"

// MsgCommandNotFound formats the sink message for an unknown command id.
// When suggestion is not empty it is appended as a hint.
func MsgCommandNotFound(id, suggestion string) string {
	if suggestion != "" {
		return fmt.Sprintf("command not found: %s (did you mean %q?)", id, suggestion)
	}
	return fmt.Sprintf("command not found: %s", id)
}

// MsgParseError formats the sink message for a line or option parse failure.
func MsgParseError(err error) string {
	return fmt.Sprintf("parse error: %v", err)
}
