package locator

import (
	"strconv"
	"strings"
)

// Literal quotes s as an XPath 1.0 string literal. XPath 1.0 has no escape
// sequences, so a value holding both quote kinds is split into concat().
func Literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range strings.Split(s, "'") {
		if i > 0 {
			b.WriteString(`, "'", `)
		}
		b.WriteString("'" + part + "'")
	}
	b.WriteString(")")
	return b.String()
}

// attrEq renders @name='value'.
func attrEq(name, value string) string {
	return "@" + name + "=" + Literal(value)
}

// step renders //tag[p1 and p2 ...], or //tag without predicates.
func step(tag string, predicates ...string) string {
	if len(predicates) == 0 {
		return "//" + tag
	}
	return "//" + tag + "[" + strings.Join(predicates, " and ") + "]"
}

// indexed renders (expr)[n].
func indexed(expr string, n int) string {
	return "(" + expr + ")[" + strconv.Itoa(n) + "]"
}
