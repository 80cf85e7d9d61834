package analyzer

import "strings"

// literal is a string constant found in R code.
type literal struct {
	Value string
	// Line and Column locate the opening quote (1-based).
	Line   int
	Column int
	// Start is the column of the first character of the literal, which is
	// the raw string prefix for r"(...)".
	Start int
	// End is the column of the closing quote, or 0 when the literal does not
	// close on the line it opens on.
	End int
}

// sourceLine is one line of R code prepared for pattern matching.
type sourceLine struct {
	Number int
	Text   string
	// Code is Text without its comment, with the contents of string
	// literals replaced by spaces. Quotes stay in place so columns match Text.
	Code     string
	Literals []literal
}

// literalAt returns the literal opening at column, if any.
func (l *sourceLine) literalAt(column int) (literal, bool) {
	for _, lit := range l.Literals {
		if lit.Column == column {
			return lit, true
		}
	}
	return literal{}, false
}

// scan splits R code into lines and tracks string literals across them.
// Double and single quoted strings, backtick names and raw strings such as
// r"(...)" or R"--[...]--" are recognized; # starts a comment only outside
// of them.
func scan(code string) []sourceLine {
	if code == "" {
		return nil
	}
	code = strings.ReplaceAll(code, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	out := make([]sourceLine, len(lines))

	var (
		quote     byte
		rawCloser string
		value     strings.Builder
		litLine   int
		litColumn int
		litStart  int
	)

	closeLiteral := func(line, end int) {
		if quote != '`' {
			lit := literal{
				Value:  value.String(),
				Line:   litLine + 1,
				Column: litColumn,
				Start:  litStart,
			}
			if line == litLine {
				lit.End = end
			}
			out[litLine].Literals = append(out[litLine].Literals, lit)
		}
		value.Reset()
		quote = 0
		rawCloser = ""
	}

	for i, line := range lines {
		masked := []byte(line)
		end := len(line)
		if quote != 0 {
			value.WriteByte('\n')
		}

	chars:
		for j := 0; j < len(line); j++ {
			c := line[j]
			switch {
			case rawCloser != "":
				if strings.HasPrefix(line[j:], rawCloser) {
					for k := j; k < j+len(rawCloser)-1; k++ {
						masked[k] = ' '
					}
					j += len(rawCloser) - 1
					closeLiteral(i, j+1)
					continue
				}
				value.WriteByte(c)
				masked[j] = ' '
			case quote != 0:
				if c == '\\' && j+1 < len(line) {
					value.WriteString(unescape(line[j+1]))
					masked[j], masked[j+1] = ' ', ' '
					j++
					continue
				}
				if c == quote {
					closeLiteral(i, j+1)
					continue
				}
				value.WriteByte(c)
				masked[j] = ' '
			case c == '#':
				end = j
				break chars
			case c == 'r' || c == 'R':
				opener, closer, ok := rawStringAt(line, j)
				if !ok {
					continue
				}
				quote = line[j+1]
				rawCloser = closer
				litLine, litColumn, litStart = i, j+2, j+1
				for k := j + 2; k <= opener; k++ {
					masked[k] = ' '
				}
				j = opener
			case c == '"' || c == '\'' || c == '`':
				quote = c
				litLine, litColumn, litStart = i, j+1, j+1
			}
		}

		out[i].Number = i + 1
		out[i].Text = line
		out[i].Code = string(masked[:end])
	}

	if quote != 0 {
		closeLiteral(-1, 0)
	}

	return out
}

// rawStringAt recognizes the start of a raw string at position i, returning
// the index of its opening bracket and the sequence that closes it.
func rawStringAt(line string, i int) (int, string, bool) {
	if i > 0 && isIdentChar(line[i-1]) {
		return 0, "", false
	}
	if i+1 >= len(line) || (line[i+1] != '"' && line[i+1] != '\'') {
		return 0, "", false
	}
	q := line[i+1]
	j := i + 2
	for j < len(line) && line[j] == '-' {
		j++
	}
	if j >= len(line) {
		return 0, "", false
	}
	var closing byte
	switch line[j] {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	case '{':
		closing = '}'
	default:
		return 0, "", false
	}
	dashes := line[i+2 : j]
	return j, string(closing) + dashes + string(q), true
}

func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case '\\', '"', '\'', '`':
		return string(c)
	default:
		return "\\" + string(c)
	}
}

func isIdentChar(c byte) bool {
	return c == '.' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
