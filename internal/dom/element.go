// Package dom models the small slice of the browser DOM that the auth page
// mutates: class lists, inner markup, inline styles and a few attributes.
// Components receive element handles explicitly instead of looking them up
// by id.
package dom

import (
	"sort"
	"strings"
)

// ClassList is an ordered set of CSS class names.
type ClassList struct {
	names []string
}

// NewClassList creates a class list from space-separated class strings.
func NewClassList(classes ...string) *ClassList {
	l := &ClassList{}
	l.Add(classes...)
	return l
}

// Add appends each class that is not already present.
// Arguments may themselves contain several space-separated names.
func (l *ClassList) Add(classes ...string) {
	for _, c := range classes {
		for _, name := range strings.Fields(c) {
			if !l.Contains(name) {
				l.names = append(l.names, name)
			}
		}
	}
}

// Remove deletes each named class if present.
func (l *ClassList) Remove(classes ...string) {
	drop := make(map[string]struct{})
	for _, c := range classes {
		for _, name := range strings.Fields(c) {
			drop[name] = struct{}{}
		}
	}
	kept := l.names[:0]
	for _, name := range l.names {
		if _, ok := drop[name]; !ok {
			kept = append(kept, name)
		}
	}
	l.names = kept
}

// Contains reports whether name is in the list.
func (l *ClassList) Contains(name string) bool {
	for _, n := range l.names {
		if n == name {
			return true
		}
	}
	return false
}

// Set replaces the whole list, like assigning className.
func (l *ClassList) Set(classes string) {
	l.names = nil
	l.Add(classes)
}

// Names returns a copy of the class names in insertion order.
func (l *ClassList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

func (l *ClassList) String() string {
	return strings.Join(l.names, " ")
}

// Element is a handle to one DOM node.
type Element struct {
	ID       string
	Classes  *ClassList
	Inner    string // raw inner markup
	Text     string
	Disabled bool
	Data     map[string]string

	style  map[string]string
	layout int
}

// New creates an element with the given id and classes.
func New(id string, classes ...string) *Element {
	return &Element{
		ID:      id,
		Classes: NewClassList(classes...),
		Data:    make(map[string]string),
		style:   make(map[string]string),
	}
}

// SetStyle sets one inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	if value == "" {
		delete(e.style, prop)
		return
	}
	e.style[prop] = value
}

// Style returns the value of one inline style property.
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// StyleString renders the inline style attribute with properties sorted by name.
func (e *Element) StyleString() string {
	if len(e.style) == 0 {
		return ""
	}
	props := make([]string, 0, len(e.style))
	for p := range e.style {
		props = append(props, p)
	}
	sort.Strings(props)
	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(e.style[p])
		b.WriteString(";")
	}
	return b.String()
}

// Reflow forces a layout pass. A class removed and re-added around a reflow
// is rendered as a fresh node, which restarts its CSS animation.
func (e *Element) Reflow() {
	e.layout++
}

// Layout returns the number of reflows forced on the element.
func (e *Element) Layout() int {
	return e.layout
}
