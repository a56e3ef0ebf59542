package step

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
)

var (
	// A reference is `#<id>` followed by a list or argument terminator,
	// so that #12 never matches inside #123.
	refPattern = regexp.MustCompile(`#(\d+)\s*[,)\]]`)

	// The trailing reference of a relationship record, i.e. the closing
	// `#<id>)` before the end of the statement.
	lastRefPattern = regexp.MustCompile(`#(\d+)\s*\)\s*$`)

	hexBlock = regexp.MustCompile(`\\X2\\([0-9A-Fa-f]+)\\X0\\`)
	hexByte  = regexp.MustCompile(`\\X\\([0-9A-Fa-f]{2})`)
)

// ReferencedIDs returns every entity id referenced by body, in order of
// appearance, using the id-boundary-safe pattern.
func ReferencedIDs(body string) []int {
	matches := refPattern.FindAllStringSubmatch(body, -1)
	if matches == nil {
		return nil
	}
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// References reports whether body references id.
func References(body string, id int) bool {
	needle := "#" + strconv.Itoa(id)
	for start := 0; ; {
		i := strings.Index(body[start:], needle)
		if i < 0 {
			return false
		}
		end := start + i + len(needle)
		if end >= len(body) {
			return false
		}
		switch body[end] {
		case ',', ')', ']':
			return true
		case ' ':
			// tolerate `#12 ,` spacing
			for end < len(body) && body[end] == ' ' {
				end++
			}
			if end < len(body) && (body[end] == ',' || body[end] == ')' || body[end] == ']') {
				return true
			}
		}
		start = start + i + 1
	}
}

// LastReference returns the closing reference of a relationship record,
// the `#<id>)` immediately before the end of the (already `;`-stripped)
// body. Returns false when the body does not end in a reference.
func LastReference(body string) (int, bool) {
	m := lastRefPattern.FindStringSubmatch(body)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// QuotedStrings returns the quoted-string tokens of body in order,
// unescaped. STEP doubles embedded quotes, so scanning must treat `''`
// as a literal quote rather than a terminator.
func QuotedStrings(body string) []string {
	var out []string
	for i := 0; i < len(body); i++ {
		if body[i] != '\'' {
			continue
		}
		var sb strings.Builder
		j := i + 1
		for j < len(body) {
			if body[j] == '\'' {
				if j+1 < len(body) && body[j+1] == '\'' {
					sb.WriteByte('\'')
					j += 2
					continue
				}
				break
			}
			sb.WriteByte(body[j])
			j++
		}
		out = append(out, DecodeText(sb.String()))
		i = j
	}
	return out
}

// DecodeText expands the STEP non-ASCII escape notations: \X2\…\X0\
// (UTF-16BE code units), \X\hh (single Latin-1 byte) and the \S\
// directive prefix.
func DecodeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = hexBlock.ReplaceAllStringFunc(s, func(block string) string {
		hex := hexBlock.FindStringSubmatch(block)[1]
		if len(hex)%4 != 0 {
			return ""
		}
		units := make([]uint16, 0, len(hex)/4)
		for i := 0; i+4 <= len(hex); i += 4 {
			v, err := strconv.ParseUint(hex[i:i+4], 16, 16)
			if err != nil {
				return ""
			}
			units = append(units, uint16(v))
		}
		return string(utf16.Decode(units))
	})
	s = hexByte.ReplaceAllStringFunc(s, func(esc string) string {
		hex := hexByte.FindStringSubmatch(esc)[1]
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return ""
		}
		return string(rune(v))
	})
	s = strings.ReplaceAll(s, `\S\`, "")
	return s
}

// Numbers returns the free-floating numeric literals of body, in order.
// Ids (`#12`), enum tokens (`.T.`) and quoted text are not free-floating
// and are never matched.
func Numbers(body string) []float64 {
	stripped := stripQuoted(body)
	tokens := strings.FieldsFunc(stripped, func(r rune) bool {
		switch r {
		case ',', '(', ')', '=', ';', ' ', '\t':
			return true
		}
		return false
	})
	var out []float64
	for _, token := range tokens {
		switch token[0] {
		case '#', '.', '$', '*', '\'':
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// LastFloat returns the final free-floating numeric literal of body.
func LastFloat(body string) (float64, bool) {
	nums := Numbers(body)
	if len(nums) == 0 {
		return 0, false
	}
	return nums[len(nums)-1], true
}

// stripQuoted blanks out quoted-string tokens so their contents cannot be
// mistaken for numeric literals.
func stripQuoted(body string) string {
	var sb strings.Builder
	sb.Grow(len(body))
	inString := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			if inString && i+1 < len(body) && body[i+1] == '\'' {
				sb.WriteByte(' ')
				i++
				continue
			}
			inString = !inString
			sb.WriteByte(' ')
			continue
		}
		if inString {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
