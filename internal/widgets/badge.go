package widgets

import "rbconsole/internal/models"

// StatusBadge renders a result status in brackets, coloured per theme.
func StatusBadge(t Theme, s models.Status) string {
	label := string(s)
	if label == "" {
		label = "-"
	}
	p := t.palette()
	var code string
	switch s {
	case models.StatusPass:
		code = p.pass
	case models.StatusFail:
		code = p.fail
	case models.StatusWaived:
		code = p.waived
	case models.StatusNA:
		code = p.na
	}
	return t.paint(code, "["+label+"]")
}

// RunBadge renders an evaluation run status.
func RunBadge(t Theme, s models.RunStatus) string {
	p := t.palette()
	switch s {
	case models.RunCompleted:
		return t.paint(p.pass, string(s))
	case models.RunFailed:
		return t.paint(p.fail, string(s))
	default:
		return t.paint(p.waived, string(s))
	}
}
