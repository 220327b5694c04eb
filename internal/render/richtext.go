package render

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseMarkup splits inline markup into styled runs on top of base.
// Recognised tags: b/strong, i/em, u, br; p and div end a line. Any other
// tag is dropped and its text kept.
func ParseMarkup(markup string, base Run) []Run {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		runs                    []Run
		bold, italic, underline int
	)
	emit := func(r Run) {
		if n := len(runs); n > 0 && !r.Break && !runs[n-1].Break &&
			runs[n-1].Bold == r.Bold && runs[n-1].Italic == r.Italic && runs[n-1].Underline == r.Underline {
			runs[n-1].Text += r.Text
			return
		}
		runs = append(runs, r)
	}
	lineBreak := func() {
		if n := len(runs); n > 0 && !runs[n-1].Break {
			runs = append(runs, Run{Break: true})
		}
	}
	for {
		switch z.Next() {
		case html.ErrorToken:
			if n := len(runs); n > 0 && runs[n-1].Break {
				runs = runs[:n-1]
			}
			return runs
		case html.TextToken:
			text := string(z.Text())
			if text == "" {
				continue
			}
			emit(Run{
				Text:      text,
				Bold:      base.Bold || bold > 0,
				Italic:    base.Italic || italic > 0,
				Underline: base.Underline || underline > 0,
			})
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b", "strong":
				bold++
			case "i", "em":
				italic++
			case "u":
				underline++
			case "br":
				runs = append(runs, Run{Break: true})
			case "p", "div":
				lineBreak()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b", "strong":
				bold = max(bold-1, 0)
			case "i", "em":
				italic = max(italic-1, 0)
			case "u":
				underline = max(underline-1, 0)
			case "p", "div":
				lineBreak()
			}
		}
	}
}

// plain wraps text in a single run, splitting on newlines.
func plain(text string) []Run {
	var runs []Run
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			runs = append(runs, Run{Break: true})
		}
		if line != "" {
			runs = append(runs, Run{Text: line})
		}
	}
	return runs
}
