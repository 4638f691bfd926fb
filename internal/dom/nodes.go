package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element builds a detached element. attrs are key/value pairs.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text builds a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ParseFragment parses markup as children of a <body> element.
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// FirstElement returns the first element node among nodes.
func FirstElement(nodes []*html.Node) *html.Node {
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, v := range classes(n) {
		if v == c {
			return true
		}
	}
	return false
}

// AddClass adds c to n's class list.
func AddClass(n *html.Node, c string) {
	if n == nil || HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(classes(n), c), " ")))
}

// RemoveClass drops c from n's class list. The attribute is removed when
// it ends up empty.
func RemoveClass(n *html.Node, c string) {
	if n == nil || !HasClass(n, c) {
		return
	}
	var keep []string
	for _, v := range classes(n) {
		if v != c {
			keep = append(keep, v)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// ToggleClass flips c on n and reports whether it is now present.
func ToggleClass(n *html.Node, c string) bool {
	if n == nil {
		return false
	}
	if HasClass(n, c) {
		RemoveClass(n, c)
		return false
	}
	AddClass(n, c)
	return true
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	if n == nil {
		return false
	}
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Attached reports whether n is still part of a tree rooted at a document node.
func Attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// ReplaceWith puts repl where old was.
func ReplaceWith(old, repl *html.Node) {
	if old == nil || old.Parent == nil || repl == nil {
		return
	}
	Remove(repl)
	old.Parent.InsertBefore(repl, old)
	old.Parent.RemoveChild(old)
}

// InsertAfter places n right after ref.
func InsertAfter(ref, n *html.Node) {
	if ref == nil || ref.Parent == nil || n == nil {
		return
	}
	Remove(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// Prepend inserts n as the first child of parent.
func Prepend(parent, n *html.Node) {
	if parent == nil || n == nil {
		return
	}
	Remove(n)
	parent.InsertBefore(n, parent.FirstChild)
}

// Append inserts n as the last child of parent.
func Append(parent, n *html.Node) {
	if parent == nil || n == nil {
		return
	}
	Remove(n)
	parent.AppendChild(n)
}

// TextContent concatenates the text below n.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// SetText replaces n's children with a single text node.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	if s != "" {
		n.AppendChild(Text(s))
	}
}

// Value returns a form control's current value.
func Value(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.DataAtom == atom.Textarea {
		return TextContent(n)
	}
	v, _ := Attr(n, "value")
	return v
}

// SetValue sets a form control's current value.
func SetValue(n *html.Node, v string) {
	if n == nil {
		return
	}
	if n.DataAtom == atom.Textarea {
		SetText(n, v)
		return
	}
	SetAttr(n, "value", v)
}

// ResetForm clears every input, textarea and select below form.
func ResetForm(form *html.Node) {
	walk(form, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Input:
			t, _ := Attr(n, "type")
			switch strings.ToLower(t) {
			case "submit", "button", "reset", "hidden":
			case "checkbox", "radio":
				RemoveAttr(n, "checked")
			default:
				RemoveAttr(n, "value")
			}
		case atom.Textarea:
			SetText(n, "")
			return false
		case atom.Option:
			RemoveAttr(n, "selected")
		}
		return true
	})
}

// walk visits n and its descendants depth-first. Children of a node are
// skipped when fn returns false for it.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
