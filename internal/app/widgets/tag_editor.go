/*
Package widgets holds the view-models of the small presentational pieces embedded in
pages. They never call the backend and never read the session: inputs come from the
hosting page and every action is handed back to it.
*/
package widgets

import "strings"

// TagEditor is the state of a skill tag input. Tags are owned by the hosting page and
// travel with the form; the editor only keeps the text being typed.
type TagEditor struct {
	Tags  []string
	Input string
}

// NewTagEditor copies tags so that the editor never aliases the caller's slice.
func NewTagEditor(tags []string, input string) TagEditor {
	return TagEditor{Tags: append([]string{}, tags...), Input: input}
}

// Has reports whether tag is already present (exact match).
func (e TagEditor) Has(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Add commits the trimmed input as a new tag and clears the input. Empty input and
// duplicates leave the editor unchanged.
func (e TagEditor) Add() TagEditor {
	tag := strings.TrimSpace(e.Input)
	if tag == "" || e.Has(tag) {
		return e
	}

	tags := make([]string, 0, len(e.Tags)+1)
	tags = append(tags, e.Tags...)
	return TagEditor{Tags: append(tags, tag)}
}

// Remove deletes the first tag equal to tag.
func (e TagEditor) Remove(tag string) TagEditor {
	for i, t := range e.Tags {
		if t != tag {
			continue
		}
		tags := make([]string, 0, len(e.Tags)-1)
		tags = append(tags, e.Tags[:i]...)
		tags = append(tags, e.Tags[i+1:]...)
		return TagEditor{Tags: tags, Input: e.Input}
	}
	return e
}
