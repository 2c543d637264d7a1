// Package classifier labels a document's likely statement type from keywords.
package classifier

import (
	"strings"

	"github.com/Sourabh71/AI-Analyst/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type rule struct {
	label   models.Label
	matches func(lower string) bool
}

func containsAny(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}
}

// Rules are evaluated in order and the first match wins, so a document that
// mentions both a balance sheet and a cash flow is a balance sheet.
var rules = []rule{
	{label: models.LabelBalanceSheet, matches: containsAny("balance sheet")},
	{label: models.LabelProfitAndLoss, matches: containsAny("profit and loss", "p&l")},
	{label: models.LabelCashFlow, matches: containsAny("cash flow")},
}

// Classify returns the statement type suggested by text.
func Classify(text string) models.Label {
	// A Caser holds state, so one is built per call.
	l := cases.Lower(language.Und).String(text)
	for _, r := range rules {
		if r.matches(l) {
			return r.label
		}
	}
	return models.LabelUnknown
}

// Notice is the user-facing message for a label.
func Notice(label models.Label) models.Notice {
	switch label {
	case models.LabelBalanceSheet:
		return models.Notice{Level: models.LevelInfo, Message: "This document likely contains a Balance Sheet."}
	case models.LabelProfitAndLoss:
		return models.Notice{Level: models.LevelInfo, Message: "This document likely contains a Profit & Loss Statement."}
	case models.LabelCashFlow:
		return models.Notice{Level: models.LevelInfo, Message: "This document likely contains a Cash Flow Statement."}
	default:
		return models.Notice{Level: models.LevelWarning, Message: "Could not confidently detect statement type."}
	}
}
