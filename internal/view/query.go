package view

import (
	"strconv"
	"strings"
)

var simpleFlags = map[string]func(*Options){
	"-hn": func(o *Options) { o.HideNotes = true }, "--hide-notes": func(o *Options) { o.HideNotes = true },
	"-sd": func(o *Options) { o.ShowDone = true }, "--show-done": func(o *Options) { o.ShowDone = true },
	"-l": func(o *Options) { o.OnlyLinked = true }, "--link-lock": func(o *Options) { o.OnlyLinked = true },
	"-sc": func(o *Options) { o.ShowContent = true }, "--show-context": func(o *Options) { o.ShowContent = true },
}

var argFlags = map[string]func(*Options, string){
	"-a": func(o *Options, v string) { o.Area = v }, "--area": func(o *Options, v string) { o.Area = v },
	"-s": func(o *Options, v string) { o.Status = v }, "--status": func(o *Options, v string) { o.Status = v },
	"-c": func(o *Options, v string) { o.Context = v }, "--context": func(o *Options, v string) { o.Context = v },
}

// ParseQuery parses one query line into a Query, starting from the
// given default options. Flags combine freely and may appear in any
// order; unknown tokens are ignored.
func ParseQuery(input string, base Options) Query {
	q := Query{Opts: base}
	parts := strings.Fields(input)

	i := 0
	for i < len(parts) {
		part := parts[i]
		switch {
		case isNumber(part) && q.Line == 0:
			q.Line, _ = strconv.Atoi(part)
			i++
		case simpleFlags[part] != nil:
			simpleFlags[part](&q.Opts)
			i++
		case part == "-r" || part == "--root":
			switch {
			case q.Line != 0:
				q.Root = true
				i++
			case i+1 < len(parts) && isNumber(parts[i+1]):
				q.Line, _ = strconv.Atoi(parts[i+1])
				q.Root = true
				i += 2
			default:
				i++
			}
		case argFlags[part] != nil && i+1 < len(parts):
			argFlags[part](&q.Opts, parts[i+1])
			i += 2
		case part == "-t" || part == "--tag":
			i++
			for i < len(parts) && !strings.HasPrefix(parts[i], "-") {
				q.Opts.Tags = append(q.Opts.Tags, parts[i])
				i++
			}
		default:
			i++
		}
	}
	return q
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
