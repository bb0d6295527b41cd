package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// ArticleText extracts visible prose from an HTML document, skipping
// script/style/nav content. Plain text input is returned trimmed.
func ArticleText(content string) (string, error) {
	if !strings.Contains(content, "<") {
		return strings.TrimSpace(content), nil
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}
	return visibleText(doc), nil
}

// visibleText walks the DOM collecting text nodes, skipping non-content tags
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer", "aside":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// SplitSentences splits text on sentence terminators, keeping sentences of
// plausible length. Simple heuristic: terminator followed by whitespace.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 20 && len(sentence) <= 500 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	if current.Len() > 0 {
		flush()
	}

	return sentences
}
