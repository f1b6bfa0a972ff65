// Package docs serves riceup's built-in help topics. Topics are
// markdown files embedded at build time and rendered for the terminal
// with glamour, falling back to the raw text when rendering is not
// possible.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed topics/*.md
var topicFS embed.FS

// Topic is a single embedded help document.
type Topic struct {
	Name    string
	Content string
}

// List returns all available topics sorted by name.
func List() ([]Topic, error) {
	entries, err := fs.ReadDir(topicFS, "topics")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded topics: %w", err)
	}

	topics := make([]Topic, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		content, err := fs.ReadFile(topicFS, "topics/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read topic %s: %w", name, err)
		}
		topics = append(topics, Topic{Name: name, Content: string(content)})
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// Get returns the topic with the given name. The second return value
// reports whether it exists.
func Get(name string) (Topic, bool) {
	content, err := fs.ReadFile(topicFS, "topics/"+name+".md")
	if err != nil {
		return Topic{}, false
	}
	return Topic{Name: name, Content: string(content)}, true
}
