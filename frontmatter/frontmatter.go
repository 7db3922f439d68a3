// Package frontmatter parses the delimited metadata block that prefaces
// every post file: a `---` line, `key: value` pairs one per line, and a
// closing `---` line. Everything after the closing delimiter is the body.
//
// Posts are static authored content, so the parser fails fast on malformed
// input instead of guessing defaults.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

const delimiter = "---"

// ErrNoFrontMatter is returned when a file does not start with a complete
// front matter block.
var ErrNoFrontMatter = errors.New("frontmatter: missing delimiter block")

// Field is a single raw key/value pair, in file order.
type Field struct {
	Key   string
	Value string
}

// Matter is the parsed front matter of one post. Recognized keys are
// promoted to struct fields; Fields keeps every pair as written.
type Matter struct {
	Title       string
	PublishedAt time.Time
	Summary     string
	Image       string

	Fields []Field
}

// dateLayouts are the accepted publishedAt formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Parse splits src into front matter and body. The metadata block must be
// closed; each line splits on its first colon only, so values may themselves
// contain colons. Surrounding single or double quotes on a value are
// stripped.
func Parse(src []byte) (Matter, []byte, error) {
	rest := bytes.TrimLeft(src, " \t\r\n")
	if !bytes.HasPrefix(rest, []byte(delimiter)) {
		return Matter{}, nil, ErrNoFrontMatter
	}
	rest = rest[len(delimiter):]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		return Matter{}, nil, ErrNoFrontMatter
	}

	var m Matter
	lineNo := 1
	for {
		line := rest
		nl := bytes.IndexByte(rest, '\n')
		if nl >= 0 {
			line, rest = rest[:nl], rest[nl+1:]
		} else {
			rest = nil
		}
		trimmed := strings.TrimRight(string(line), " \t\r")

		if strings.TrimSpace(trimmed) == delimiter {
			body := rest
			if err := m.validate(); err != nil {
				return Matter{}, nil, err
			}
			return m, body, nil
		}
		if nl < 0 {
			// Ran out of input before the closing delimiter.
			return Matter{}, nil, ErrNoFrontMatter
		}
		lineNo++

		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			return Matter{}, nil, fmt.Errorf("frontmatter: malformed metadata line %d: %q", lineNo, trimmed)
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		if key == "" {
			return Matter{}, nil, fmt.Errorf("frontmatter: empty key on metadata line %d: %q", lineNo, trimmed)
		}
		m.Fields = append(m.Fields, Field{Key: key, Value: value})

		switch key {
		case "title":
			m.Title = value
		case "publishedAt":
			t, err := parseDate(value)
			if err != nil {
				return Matter{}, nil, fmt.Errorf("frontmatter: invalid publishedAt %q: %w", value, err)
			}
			m.PublishedAt = t
		case "summary":
			m.Summary = value
		case "image":
			m.Image = value
		}
	}
}

// Encode serializes the raw fields back to a delimited key: value block.
// Parsing the result yields the same pairs.
func (m Matter) Encode() []byte {
	var b bytes.Buffer
	b.WriteString(delimiter + "\n")
	for _, f := range m.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
	}
	b.WriteString(delimiter + "\n")
	return b.Bytes()
}

func (m Matter) validate() error {
	if m.Title == "" {
		return errors.New("frontmatter: missing title")
	}
	if m.PublishedAt.IsZero() {
		// publishedAt drives post ordering, so it is never defaulted.
		return errors.New("frontmatter: missing publishedAt")
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
