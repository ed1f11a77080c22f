package widgets

import "fmt"

// PagerLine renders page navigation. On the first page prev is shown
// dimmed as "- prev"; next is always offered.
func PagerLine(t Theme, page int, prevDisabled bool) string {
	prev := "< prev"
	if prevDisabled {
		prev = t.Dim("- prev")
	}
	return fmt.Sprintf("%s | page %d | next >", prev, page)
}
