package parser

import (
	"strings"
	"unicode"
)

const indentUnit = "    "

// clauseKinds continue a compound statement on a line of their own
var clauseKinds = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
	"case_clause":         true,
}

// tightKinds join their direct children without spaces
var tightKinds = map[string]bool{
	"keyword_argument":         true,
	"default_parameter":        true,
	"unary_operator":           true,
	"list_splat":               true,
	"dictionary_splat":         true,
	"list_splat_pattern":       true,
	"dictionary_splat_pattern": true,
	"relative_import":          true,
	"import_prefix":            true,
	"interpolation":            true,
	"decorator":                true,
	"slice":                    true,
	"keyword_pattern":          true,
}

// atomKinds never need parentheses to keep their meaning
var atomKinds = map[string]bool{
	"identifier":               true,
	"integer":                  true,
	"float":                    true,
	"true":                     true,
	"false":                    true,
	"none":                     true,
	"string":                   true,
	"concatenated_string":      true,
	"call":                     true,
	"attribute":                true,
	"subscript":                true,
	"list":                     true,
	"dictionary":               true,
	"set":                      true,
	"tuple":                    true,
	"parenthesized_expression": true,
	"list_comprehension":       true,
	"dictionary_comprehension": true,
	"set_comprehension":        true,
	"generator_expression":     true,
}

// looseContexts hold a whole expression, so parentheses around it are noise
var looseContexts = map[string]bool{
	"expression_statement": true,
	"assignment":           true,
	"augmented_assignment": true,
	"return_statement":     true,
	"argument_list":        true,
	"keyword_argument":     true,
	"expression_list":      true,
	"list":                 true,
	"set":                  true,
	"pair":                 true,
	"subscript":            true,
	"default_parameter":    true,
}

var pythonKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true, "None": true, "True": true, "False": true,
}

// Render returns the canonical text of a tree: one statement per line, four
// spaces per block level, single spaces between tokens and no comments.
// Equal trees always render to equal strings.
func Render(root *Node) string {
	if root == nil {
		return ""
	}
	p := &printer{}
	if root.Type == NodeModule || root.Type == NodeBlock {
		p.statements(root)
	} else {
		p.node(root)
	}
	p.newline()
	return strings.Join(p.lines, "\n")
}

type printer struct {
	lines   []string
	line    strings.Builder
	indent  int
	started bool
	last    string
	glue    bool
}

// newline flushes the pending line, if any, at the current indent
func (p *printer) newline() {
	if !p.started {
		return
	}
	p.lines = append(p.lines, strings.Repeat(indentUnit, p.indent)+p.line.String())
	p.line.Reset()
	p.started = false
	p.last = ""
	p.glue = false
}

func (p *printer) token(text string) {
	if text == "" {
		return
	}
	if p.started && !p.glue && needsSpace(p.last, text) {
		p.line.WriteByte(' ')
	}
	p.line.WriteString(text)
	p.started = true
	p.last = text
	p.glue = false
}

// statements prints every statement of a module or block on its own line.
// Bare tokens at this level are statement separators.
func (p *printer) statements(n *Node) {
	for _, c := range n.Children {
		if c.Type == NodeToken {
			continue
		}
		p.newline()
		p.node(c)
		p.newline()
	}
}

func (p *printer) node(n *Node) {
	switch {
	case n.Type == NodeBlock:
		p.newline()
		p.indent++
		p.statements(n)
		p.indent--
	case clauseKinds[n.Kind]:
		p.newline()
		p.children(n)
	case n.Type == NodeDecorator:
		p.newline()
		p.tight(n)
		p.newline()
	case n.Kind == "string":
		p.token(renderString(n))
	case n.Kind == "concatenated_string":
		if merged, ok := mergeStrings(n); ok {
			p.token(merged)
		} else {
			p.children(n)
		}
	case n.Kind == "parenthesized_expression" && redundantParens(n):
		p.node(n.NamedChildren()[0])
	case n.IsLeaf():
		p.token(n.Value)
	case tightKinds[n.Kind]:
		p.tight(n)
	default:
		p.children(n)
	}
}

func (p *printer) children(n *Node) {
	for i, c := range n.Children {
		if c.Type == NodeToken && c.Value == "," && trailingComma(n, i) {
			continue
		}
		p.node(c)
	}
}

// trailingComma reports whether the comma at i only precedes a closing
// bracket. A one-element tuple keeps it.
func trailingComma(n *Node, i int) bool {
	if i+1 >= len(n.Children) {
		return false
	}
	next := n.Children[i+1]
	if next.Type != NodeToken {
		return false
	}
	switch next.Value {
	case ")", "]", "}":
	default:
		return false
	}
	if n.Kind == "tuple" || n.Kind == "tuple_pattern" {
		return len(n.NamedChildren()) > 1
	}
	return true
}

// redundantParens reports whether a parenthesized expression renders the
// same without its parentheses.
func redundantParens(n *Node) bool {
	inner := n.NamedChildren()
	if len(inner) != 1 {
		return false
	}
	switch inner[0].Kind {
	case "yield", "named_expression", "list_splat":
		return false
	}
	if atomKinds[inner[0].Kind] {
		return true
	}
	if n.Parent == nil || !looseContexts[n.Parent.Kind] {
		return false
	}
	return n.Parent.Kind != "subscript" || n.Field == "subscript"
}

func (p *printer) tight(n *Node) {
	for i, c := range n.Children {
		if i > 0 {
			p.glue = true
		}
		p.node(c)
	}
}

// renderString returns a plain literal in normalized quotes, or the literal's
// source text with each interpolation replaced by its rendering.
func renderString(n *Node) string {
	if len(n.Children) == 0 {
		if prefix, content, ok := simpleString(n.Value); ok {
			if quoted, ok := quoteString(prefix, content); ok {
				return quoted
			}
		}
		return n.Value
	}

	var sb strings.Builder
	base := n.Location.StartByte
	cursor := 0
	for _, c := range n.Children {
		start := c.Location.StartByte - base
		end := c.Location.EndByte - base
		if start < cursor || start > end || end > len(n.Value) {
			continue
		}
		sb.WriteString(n.Value[cursor:start])
		sub := &printer{}
		sub.node(c)
		sb.WriteString(sub.line.String())
		cursor = end
	}
	sb.WriteString(n.Value[cursor:])
	return sb.String()
}

// simpleString splits a literal without escapes or line breaks into its
// normalized prefix and its content.
func simpleString(literal string) (prefix, content string, ok bool) {
	i := strings.IndexAny(literal, `"'`)
	if i < 0 {
		return "", "", false
	}
	switch strings.ToLower(literal[:i]) {
	case "", "r":
		prefix = ""
	case "u":
		prefix = "u"
	case "b", "rb", "br":
		prefix = "b"
	default:
		return "", "", false
	}

	body := literal[i:]
	delim := body[:1]
	if strings.HasPrefix(body, strings.Repeat(delim, 3)) && len(body) >= 6 {
		delim = body[:3]
	}
	if len(body) < 2*len(delim) || !strings.HasSuffix(body, delim) {
		return "", "", false
	}
	content = body[len(delim) : len(body)-len(delim)]
	if strings.ContainsAny(content, "\\\r\n") {
		return "", "", false
	}
	return prefix, content, true
}

// quoteString writes content the way Python's repr quotes it: single quotes
// unless the content holds a single quote and no double quote.
func quoteString(prefix, content string) (string, bool) {
	switch {
	case !strings.Contains(content, "'"):
		return prefix + "'" + content + "'", true
	case !strings.Contains(content, `"`):
		return prefix + `"` + content + `"`, true
	}
	return "", false
}

// mergeStrings joins adjacent plain literals into one
func mergeStrings(n *Node) (string, bool) {
	var prefix string
	var sb strings.Builder
	for i, part := range n.Children {
		if part.Kind != "string" || len(part.Children) > 0 {
			return "", false
		}
		pre, content, ok := simpleString(part.Value)
		if !ok {
			return "", false
		}
		if i == 0 {
			prefix = pre
		} else if (pre == "b") != (prefix == "b") {
			return "", false
		}
		sb.WriteString(content)
	}
	return quoteString(prefix, sb.String())
}

func needsSpace(prev, next string) bool {
	switch prev {
	case "(", "[", "{":
		return false
	case ".":
		return pythonKeywords[next]
	}

	switch next {
	case ")", "]", "}", ",", ":", ".", ";":
		return false
	case "(", "[":
		return !isCallee(prev)
	}
	return true
}

// isCallee reports whether a following "(" or "[" is a call or subscript
func isCallee(prev string) bool {
	switch prev[len(prev)-1] {
	case ')', ']', '}', '"', '\'':
		return true
	}
	return isIdentifier(prev) && !pythonKeywords[prev]
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}
