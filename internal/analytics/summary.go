package analytics

import (
	"sort"
	"strings"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// Uncategorised labels expenses whose category cannot be resolved.
const Uncategorised = "Uncategorised"

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// CategorySummary groups expenses by resolved category name and sums their
// amounts, largest total first. The name cached on the expense wins over the
// id lookup.
func CategorySummary(expenses []core.Expense, categories []core.Category) []CategoryTotal {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	idx := map[string]int{}
	var out []CategoryTotal
	for _, e := range expenses {
		name := resolveCategoryName(e, names)
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, CategoryTotal{Name: name, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
		out[i].Count++
	}

	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].Total.Cmp(out[b].Total); c != 0 {
			return c > 0
		}
		return out[a].Name < out[b].Name
	})
	return out
}

func resolveCategoryName(e core.Expense, names map[string]string) string {
	if n := strings.TrimSpace(e.CategoryName); n != "" {
		return n
	}
	if n, ok := names[e.CategoryID]; ok && n != "" {
		return n
	}
	return Uncategorised
}

// CompletionRatio is the share of active planned expenses already paid, in
// percent. Zero when nothing is active.
func CompletionRatio(templates []core.PlannedExpense) float64 {
	var visible, done int
	for _, t := range templates {
		if t.Status != core.Active {
			continue
		}
		visible++
		if t.Paid == core.Paid {
			done++
		}
	}
	if visible == 0 {
		return 0
	}
	return float64(done) / float64(visible) * 100
}
