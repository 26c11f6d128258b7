package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

func formatter() *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(false),
		chromahtml.PreventSurroundingPre(true),
	)
}

// HighlightCode tokenizes code with chroma and returns class-based HTML
// without the surrounding <pre>. Unknown languages and themes fall back;
// tokenizer failures return the input unchanged.
func HighlightCode(code, language, syntaxTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(syntaxTheme)
	if style == nil {
		style = styles.Fallback
	}

	var buf strings.Builder
	if err := formatter().Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
