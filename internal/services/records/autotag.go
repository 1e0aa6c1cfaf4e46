package records

import "strings"

// tagKeywords maps a tag to the note keywords that trigger it, in the
// order tags are emitted.
var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"#skipday", []string{"tired", "lazy", "rest", "sleep"}},
	{"#shortday", []string{"short", "half", "partial"}},
	{"#savings", []string{"save", "no spend", "zero spend"}},
	{"#food", []string{"food", "coffee", "drink", "meal"}},
	{"#travel", []string{"uber", "bus", "trip", "travel", "metro", "rickshaw"}},
}

// AutoTag derives tags from note keywords.
func AutoTag(note string) string {
	s := strings.ToLower(note)
	var tags []string
	for _, tk := range tagKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(s, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
	}
	return strings.Join(tags, " ")
}
