package classifier

import (
	"testing"

	"github.com/Sourabh71/AI-Analyst/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Label
	}{
		{"balance sheet", "Consolidated Balance Sheet as at 31 March", models.LabelBalanceSheet},
		{"profit and loss", "Statement of Profit and Loss for the year", models.LabelProfitAndLoss},
		{"p&l shorthand", "Segment P&L summary", models.LabelProfitAndLoss},
		{"cash flow", "CASH FLOW FROM OPERATING ACTIVITIES", models.LabelCashFlow},
		{"balance sheet wins over cash flow", "Cash flow statement follows the balance sheet", models.LabelBalanceSheet},
		{"balance sheet wins over p&l", "P&L and Balance Sheet", models.LabelBalanceSheet},
		{"p&l wins over cash flow", "cash flow and profit and loss", models.LabelProfitAndLoss},
		{"phrase split across lines does not match", "balance\nsheet", models.LabelUnknown},
		{"no trigger phrase", "Quarterly press release: revenue grew 12%", models.LabelUnknown},
		{"empty text", "", models.LabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyIgnoresFrequency(t *testing.T) {
	text := "cash flow cash flow cash flow cash flow balance sheet"
	assert.Equal(t, models.LabelBalanceSheet, Classify(text))
}

func TestNotice(t *testing.T) {
	assert.Equal(t, models.LevelInfo, Notice(models.LabelBalanceSheet).Level)
	assert.Contains(t, Notice(models.LabelProfitAndLoss).Message, "Profit & Loss")
	assert.Contains(t, Notice(models.LabelCashFlow).Message, "Cash Flow")

	unknown := Notice(models.LabelUnknown)
	assert.Equal(t, models.LevelWarning, unknown.Level)
	assert.Equal(t, "Could not confidently detect statement type.", unknown.Message)
}
