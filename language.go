package notebook

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bounds the Bayesian classifier to languages that
// plausibly appear in notebook cells. go-enry's classifier ranks a
// candidate set; it returns nothing when given none.
var classifierCandidates = []string{
	"Python", "R", "Julia", "JavaScript", "TypeScript", "Go", "Rust",
	"Ruby", "Shell", "C", "C++", "Java", "Scala", "SQL", "Perl", "PHP",
	"Lua", "Haskell", "Markdown",
}

// DetectLanguage guesses a language tag for source content: shebang first,
// then go-enry's Bayesian classifier over a fixed candidate set. Returns a
// lower-cased tag, or the empty string for blank content. Intended for
// cells created without an explicit language.
func DetectLanguage(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	content := []byte(source)

	if lang, ok := enry.GetLanguageByShebang(content); ok {
		return strings.ToLower(lang)
	}
	if langs := enry.GetLanguagesByClassifier("", content, classifierCandidates); len(langs) > 0 {
		return strings.ToLower(langs[0])
	}
	return ""
}
