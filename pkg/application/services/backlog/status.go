package backlog

import "fmt"

var completedStatuses = map[string]struct{}{
	"zavrseno":   {},
	"zavrsen":    {},
	"zavrsena":   {},
	"gotovo":     {},
	"isporuceno": {},
	"completed":  {},
	"complete":   {},
	"done":       {},
	"finished":   {},
}

// isCompleted reports whether a status cell names a finished order
func isCompleted(v any) bool {
	var text string
	switch val := v.(type) {
	case nil:
		return false
	case string:
		text = val
	case []byte:
		text = string(val)
	case fmt.Stringer:
		text = val.String()
	default:
		text = fmt.Sprint(val)
	}
	_, ok := completedStatuses[foldName(text)]
	return ok
}
