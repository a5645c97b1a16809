package invoice

import (
	"github.com/ryanuber/go-glob"
	"golang.org/x/text/cases"
)

// Classifier guesses an expense category from an item name. It is an
// interface so that the keyword table can later be swapped for a
// smarter classifier without touching callers.
type Classifier interface {
	Classify(name string) string
}

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "Other"

// categoryRule maps one category to the glob patterns that select it.
type categoryRule struct {
	Category string
	Patterns []string
}

// The rules are ordered, the first matching category wins.
var defaultRules = []categoryRule{
	{"Food", []string{"*pizza*", "*burger*", "*chips*", "*juice*", "*milk*", "*meal*", "*dosa*", "*idli*", "*kfc*"}},
	{"Books", []string{"*book*", "*pen*", "*notebook*"}},
	{"Transport", []string{"*bus*", "*uber*", "*ola*", "*fuel*", "*taxi*"}},
	{"Shopping", []string{"*cloth*", "*amazon*", "*flipkart*", "*shopping*"}},
	{"Medical", []string{"*tablet*", "*medicine*", "*clinic*", "*doctor*"}},
	{"Personal Care", []string{"*hair*", "*salon*", "*shampoo*"}},
	{"Electronics", []string{"*charger*", "*earphone*", "*laptop*", "*mobile*"}},
}

var fold = cases.Fold()

// KeywordClassifier matches item names against an ordered table of
// case-insensitive keyword patterns.
type KeywordClassifier struct {
	rules []categoryRule
}

// NewKeywordClassifier returns a classifier with the default keyword
// table.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: defaultRules}
}

func (k *KeywordClassifier) Classify(name string) string {
	folded := fold.String(name)

	for _, rule := range k.rules {
		for _, pattern := range rule.Patterns {
			if glob.Glob(pattern, folded) {
				return rule.Category
			}
		}
	}

	return DefaultCategory
}
