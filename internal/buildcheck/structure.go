package buildcheck

import (
	"errors"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// impliedEnd lists elements whose end tag may be omitted. <html> is not
// among them: a page must close its root explicitly.
var impliedEnd = map[string]bool{
	"head": true, "body": true, "p": true, "li": true, "dt": true, "dd": true,
	"option": true, "optgroup": true, "tr": true, "td": true, "th": true,
	"thead": true, "tbody": true, "tfoot": true, "colgroup": true,
	"caption": true, "rt": true, "rp": true,
}

type scanResult struct {
	problems   []string
	stylesheet bool
	classes    map[string]bool
}

// scan tokenizes one page and reports structural problems: a missing or
// misplaced doctype, zero or several <html> roots, content outside the root,
// mismatched or unclosed elements and a missing or empty <title> in <head>.
func scan(doc string) scanResult {
	res := scanResult{classes: make(map[string]bool)}
	problem := func(s string) { res.problems = append(res.problems, s) }

	var (
		stack                     []string
		doctype                   bool
		roots                     int
		title, titleText, inTitle bool
	)

	z := html.NewTokenizer(strings.NewReader(doc))
loop:
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				problem("tokenizer: " + err.Error())
			}
			break loop

		case html.DoctypeToken:
			tok := z.Token()
			switch {
			case roots > 0:
				problem("<!DOCTYPE> after the <html> root")
			case !strings.EqualFold(strings.TrimSpace(tok.Data), "html"):
				problem("doctype is not html: " + tok.Data)
			default:
				doctype = true
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			name := tok.Data
			collectAttrs(&res, tok)

			switch {
			case name == "html" && len(stack) == 0:
				roots++
				if roots == 2 {
					problem("more than one <html> root")
				}
			case name == "html":
				problem("nested <html>")
			case len(stack) == 0:
				problem("<" + name + "> outside the <html> root")
			}
			if name == "title" && slices.Contains(stack, "head") {
				title, inTitle = true, true
			}

			if tt == html.SelfClosingTagToken || voidElements[name] {
				continue
			}
			stack = append(stack, name)

		case html.EndTagToken:
			name := z.Token().Data
			if name == "title" {
				inTitle = false
			}
			if voidElements[name] {
				continue
			}
			// The innermost open element with that name closes.
			at := lastIndex(stack, name)
			if at < 0 {
				problem("unexpected </" + name + ">")
				continue
			}
			for _, open := range stack[at+1:] {
				if !impliedEnd[open] {
					problem("<" + open + "> not closed before </" + name + ">")
				}
			}
			stack = stack[:at]

		case html.TextToken:
			text := strings.TrimSpace(string(z.Text()))
			if text == "" {
				continue
			}
			if len(stack) == 0 {
				problem("text outside the <html> root")
			}
			if inTitle {
				titleText = true
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if !impliedEnd[stack[i]] {
			problem("unclosed <" + stack[i] + ">")
		}
	}
	if !doctype {
		problem("missing <!DOCTYPE html>")
	}
	if roots == 0 {
		problem("no <html> root")
	}
	switch {
	case !title:
		problem("missing <title> in <head>")
	case !titleText:
		problem("empty <title>")
	}
	return res
}

func collectAttrs(res *scanResult, tok html.Token) {
	var rel, href string
	for _, a := range tok.Attr {
		switch a.Key {
		case "class":
			for _, c := range strings.Fields(a.Val) {
				res.classes[c] = true
			}
		case "rel":
			rel = a.Val
		case "href":
			href = a.Val
		}
	}
	if tok.Data == "link" && href != "" && slices.Contains(strings.Fields(strings.ToLower(rel)), "stylesheet") {
		res.stylesheet = true
	}
}

func lastIndex(stack []string, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			return i
		}
	}
	return -1
}
