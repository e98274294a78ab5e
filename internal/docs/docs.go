// Package docs holds the built-in help topics shown by 'incidentdesk docs'.
package docs

import (
	"fmt"
	"strings"
)

// Topic is one help article.
type Topic struct {
	Name    string // argument to 'incidentdesk docs'
	Title   string
	Summary string // shown in the topic list
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get finds a topic by name, ignoring case and surrounding space.
func Get(name string) (Topic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
		names = append(names, t.Name)
	}
	return Topic{}, fmt.Errorf("unknown topic %q (available: %s)", name, strings.Join(names, ", "))
}
