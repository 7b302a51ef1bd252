package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_Default(t *testing.T) {
	c := Default()

	assert.Equal(t, "RENT", c.Categorize("Hyra januari"))
	assert.Equal(t, "SALARIES", c.Categorize("LÖN 2024-01"))
	assert.Equal(t, "TAXES", c.Categorize("Skatteverket moms Q1"))
	assert.Equal(t, "SALES", c.Categorize("Invoice #1 payment"))
	assert.Equal(t, Uncategorized, c.Categorize("???"))
}

func TestCategorize_FirstRuleWins(t *testing.T) {
	c := New([]Rule{
		{Keywords: []string{"coffee"}, Category: "FIKA"},
		{Keywords: []string{"coffee machine"}, Category: "EQUIPMENT"},
	})

	// Rule order, not specificity, decides.
	assert.Equal(t, "FIKA", c.Categorize("Coffee machine purchase"))
}

func TestCategorize_EmptyTable(t *testing.T) {
	c := New(nil)
	assert.Equal(t, Uncategorized, c.Categorize("anything"))
}
