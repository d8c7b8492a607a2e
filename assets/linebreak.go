package assets

import "bytes"

// insertLineBreaks splits minified output into lines no longer than roughly column
// characters. A newline is inserted only after a statement or rule boundary ("}" for
// CSS, ";" or "}" for JS) that lies outside strings, comments, template literals and
// regular expression literals, and only once the current line has reached column.
// A column of 0 breaks after every boundary; a negative column returns src unchanged.
func insertLineBreaks(src []byte, column int, t FileType) []byte {
	if column < 0 || len(src) == 0 {
		return src
	}

	const (
		code = iota
		quoted
		comment
		regex
	)

	var (
		out       bytes.Buffer
		state     = code
		quote     byte
		escaped   bool
		inClass   bool
		lineLen   int
		lastToken byte // last non-space byte seen in code
		lastPos   int  // index of lastToken in src
		opened    int  // index of the "*" opening the current comment
	)
	out.Grow(len(src) + len(src)/max(column, 1) + 1)

	for i := 0; i < len(src); i++ {
		c := src[i]
		out.WriteByte(c)
		lineLen++
		if c == '\n' {
			lineLen = 0
		}

		switch state {
		case quoted:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				state = code
				lastToken, lastPos = c, i
			}
			continue
		case comment:
			if c == '/' && i-1 > opened && src[i-1] == '*' {
				state = code
			}
			continue
		case regex:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '[':
				inClass = true
			case c == ']':
				inClass = false
			case c == '/' && !inClass:
				state = code
				lastToken, lastPos = c, i
			}
			continue
		}

		switch c {
		case '"', '\'':
			state, quote = quoted, c
			continue
		case '`':
			if t == JS {
				state, quote = quoted, c
				continue
			}
		case '/':
			if i+1 < len(src) && src[i+1] == '*' {
				state, opened = comment, i+1
				out.WriteByte('*')
				lineLen++
				i++
				continue
			}
			if t == JS && (regexAllowedAfter(lastToken) || regexKeyword(wordBefore(src, lastPos, lastToken))) {
				state, inClass = regex, false
				continue
			}
		}

		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			lastToken, lastPos = c, i
		}

		boundary := c == '}' || (t == JS && c == ';')
		if !boundary || lineLen < column {
			continue
		}
		if i+1 == len(src) || src[i+1] == '\n' {
			continue
		}
		out.WriteByte('\n')
		lineLen = 0
	}
	return out.Bytes()
}

// regexAllowedAfter reports whether a "/" following prev starts a regular expression
// rather than a division. Same heuristic as jsmin.
func regexAllowedAfter(prev byte) bool {
	switch prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

// regexKeyword reports whether a "/" after the keyword word starts a regular
// expression, as in "return/x/.test(s)".
func regexKeyword(word string) bool {
	switch word {
	case "return", "typeof", "instanceof", "case", "throw", "void", "in",
		"delete", "new", "do", "else", "yield", "await":
		return true
	}
	return false
}

// wordBefore returns the identifier ending at src[end], or "" when last is not an
// identifier byte or the identifier is a property name such as "a.return".
func wordBefore(src []byte, end int, last byte) string {
	if !isIdentByte(last) {
		return ""
	}
	start := end
	for start > 0 && isIdentByte(src[start-1]) {
		start--
	}
	if start > 0 && src[start-1] == '.' {
		return ""
	}
	return string(src[start : end+1])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
