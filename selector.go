package jadzia

import (
	"regexp"
	"strings"
)

// sep joins plain fragments before combinators are resolved.
const sep = "\x01"

var (
	reAttach = regexp.MustCompile(sep + `&\s*`)
	rePseudo = regexp.MustCompile(sep + `:\s*`)
)

// ComposeSelector merges the raw selector fragments of one record into final
// selector strings: at most one "@media" entry first, then other at-rules in
// order, then one plain selector. Empty entries are dropped.
//
// Fragment rules, applied in path order:
//   - "@media X" fragments are collected and joined with " and "
//   - other "@" fragments discard the plain fragments collected so far
//   - "X&" inserts X before the previous plain fragment; with no previous
//     fragment it is ignored
//   - "&X" and ":X" attach to the previous fragment without a space
func ComposeSelector(path []string) []string {
	var media, at, plain []string

	for _, frag := range path {
		switch {
		case strings.HasPrefix(frag, "@media"):
			media = append(media, strings.TrimSpace(strings.TrimPrefix(frag, "@media")))
		case strings.HasPrefix(frag, "@"):
			plain = plain[:0]
			at = append(at, frag)
		case strings.HasSuffix(frag, "&"):
			if len(plain) == 0 {
				continue
			}
			last := plain[len(plain)-1]
			plain = append(plain[:len(plain)-1], strings.TrimSpace(strings.TrimSuffix(frag, "&")), last)
		default:
			plain = append(plain, frag)
		}
	}

	out := make([]string, 0, 2+len(at))
	if len(media) > 0 {
		out = append(out, "@media "+strings.Join(media, " and "))
	}
	for _, a := range at {
		if a != "" {
			out = append(out, a)
		}
	}
	if s := mergePlain(plain); s != "" {
		out = append(out, s)
	}
	return out
}

func mergePlain(frags []string) string {
	s := strings.Join(frags, sep)
	s = reAttach.ReplaceAllString(s, "")
	s = rePseudo.ReplaceAllString(s, ":")
	s = strings.ReplaceAll(s, sep, " ")
	return strings.TrimSpace(s)
}
