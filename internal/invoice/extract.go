// Package invoice turns raw OCR text from a scanned receipt into
// candidate expense items for user review.
package invoice

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one candidate expense extracted from a line of OCR text.
type Item struct {
	Name     string          `json:"name" example:"Pizza"`
	Amount   decimal.Decimal `json:"amount" example:"250.00"`
	Category string          `json:"category" example:"Food"`
}

// lineRe matches a name, a separator (colon, dash, em-dash or
// whitespace) and an amount with optional comma-grouped thousands and
// an optional two-digit fraction.
var lineRe = regexp.MustCompile(`(.+?)[:\-—\s]+([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`)

// Extract parses OCR text into items, one per line. Lines that do not
// look like a name-amount pair are dropped, OCR output is noisy and a
// failed line is not an error. Each item gets a category guess from
// the classifier.
func Extract(raw string, classifier Classifier) []Item {
	items := make([]Item, 0)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := lineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(match[2], ",", ""))
		if err != nil {
			continue
		}

		name := strings.TrimSpace(match[1])
		items = append(items, Item{
			Name:     name,
			Amount:   amount,
			Category: classifier.Classify(name),
		})
	}

	return items
}
