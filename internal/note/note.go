// Package note parses companion note files into nested heading trees.
//
// A note file is plain markdown. Only headings whose title carries a
// type: attribute become notes; every other heading is a section break
// that closes the current nesting context without producing a note.
package note

import (
	"regexp"
	"strings"
)

// Note is one typed heading block, together with the body text that
// follows it and any deeper typed headings nested under it.
type Note struct {
	Title    string
	Type     string
	Date     string
	ID       string
	Link     string
	Level    int
	Content  string
	Children []*Note
}

var (
	headerPat = regexp.MustCompile(`^(#+)\s+(.+)`)
	typePat   = regexp.MustCompile(`type:(\w+)`)
	datePat   = regexp.MustCompile(`date:([\d-]+)`)
	idPat     = regexp.MustCompile(`id:(\S+)`)
	linkPat   = regexp.MustCompile(`link:(\S+)`)
)

func extract(pat *regexp.Regexp, text string) string {
	if m := pat.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// HasIDRecursive reports whether the note or any descendant carries an id.
// Notes without an id anywhere in their subtree cannot be referenced and
// are dropped entirely when notes are hidden.
func (n *Note) HasIDRecursive() bool {
	if n.ID != "" {
		return true
	}
	for _, c := range n.Children {
		if c.HasIDRecursive() {
			return true
		}
	}
	return false
}

// Parse builds the ordered root-level note trees from a note file.
//
// It keeps a stack of open notes ordered by strictly increasing heading
// level. A typed heading flushes accumulated body text to the stack top,
// pops every note at the same or deeper level, and attaches itself to the
// new top (or as a root). A plain heading pops the same way but stops
// body collection: text after a section break is never attributed to an
// earlier note.
func Parse(content string) []*Note {
	var (
		roots      []*Note
		stack      []*Note
		body       []string
		collecting bool
	)

	flush := func() {
		if collecting && len(stack) > 0 && len(body) > 0 {
			stack[len(stack)-1].Content = strings.TrimSpace(strings.Join(body, "\n"))
			body = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		m := headerPat.FindStringSubmatch(line)
		if m == nil {
			if collecting && strings.TrimSpace(line) != "" {
				body = append(body, line)
			}
			continue
		}

		level := len(m[1])
		rawTitle := strings.TrimSpace(m[2])

		if !strings.Contains(rawTitle, "type:") {
			// Section break: close the context, discard following text.
			flush()
			body = nil
			for len(stack) > 0 && stack[len(stack)-1].Level >= level {
				stack = stack[:len(stack)-1]
			}
			collecting = false
			continue
		}

		flush()
		body = nil

		n := &Note{
			Title: cleanTitle(rawTitle),
			Type:  extract(typePat, rawTitle),
			Date:  extract(datePat, rawTitle),
			ID:    extract(idPat, rawTitle),
			Link:  extract(linkPat, rawTitle),
			Level: level,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
		} else {
			roots = append(roots, n)
		}
		stack = append(stack, n)
		collecting = true
	}

	flush()
	return roots
}

// cleanTitle removes the recognized attribute substrings from a heading
// title, leaving the display text.
func cleanTitle(rawTitle string) string {
	title := rawTitle
	for _, pat := range []*regexp.Regexp{typePat, datePat, idPat, linkPat} {
		title = pat.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}
