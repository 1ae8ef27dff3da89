package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// localRefAttrs lists the attributes that may point at files next to the message.
var localRefAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// ResolveLocalPaths rewrites relative image sources and link targets in an
// HTML fragment to absolute file:// URLs under baseDir. The headless browser
// renders from a temp file, so relative references would otherwise break.
// An empty baseDir returns the fragment unchanged.
//
// References with a scheme, anchors, absolute paths and paths escaping
// baseDir are left alone.
func ResolveLocalPaths(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		resolveNode(n, absBase)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func resolveNode(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		if key, ok := localRefAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key {
					n.Attr[i].Val = resolveRef(n.Attr[i].Val, base)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, base)
	}
}

// resolveRef returns the file URL for ref, or ref itself when it is not a
// local relative path inside base.
func resolveRef(ref, base string) string {
	if !isLocalRelative(ref) {
		return ref
	}
	target := filepath.Join(base, filepath.FromSlash(ref))
	if !isWithin(target, base) {
		return ref
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(target)}).String()
}

func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if filepath.IsAbs(ref) {
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == ""
}

// isWithin reports whether path is dir or lies below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
