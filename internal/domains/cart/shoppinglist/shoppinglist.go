// Package shoppinglist turns the ingredient lines of a user's cart into
// the downloadable shopping list.
package shoppinglist

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const (
	Filename    = "shopping-list.txt"
	ContentType = "text/plain; charset=utf-8"

	header = "Foodgram shopping list\n\n"
)

// IngredientLine is one ingredient of one carted recipe.
type IngredientLine struct {
	RecipeID     int64
	IngredientID int64
	Name         string
	Unit         string
	Amount       int
}

// AggregateLine is the total of one ingredient across the cart.
type AggregateLine struct {
	IngredientID int64  `json:"id"`
	Name         string `json:"name"`
	Unit         string `json:"measurement_unit"`
	Total        int64  `json:"amount"`
}

// Aggregate sums amounts per ingredient id. Ingredients sharing a name but
// not an id stay separate. Output is ordered by name, unit, then id.
func Aggregate(lines []IngredientLine) []AggregateLine {
	byID := make(map[int64]*AggregateLine, len(lines))
	for _, l := range lines {
		agg, ok := byID[l.IngredientID]
		if !ok {
			agg = &AggregateLine{IngredientID: l.IngredientID, Name: l.Name, Unit: l.Unit}
			byID[l.IngredientID] = agg
		}
		agg.Total += int64(l.Amount)
	}

	out := make([]AggregateLine, 0, len(byID))
	for _, agg := range byID {
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		return a.IngredientID < b.IngredientID
	})
	return out
}

// Render writes the plain-text list, one "<name> (<unit>) - <amount>" per line.
func Render(lines []AggregateLine) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	for _, l := range lines {
		buf.WriteString(oneLine(l.Name))
		buf.WriteString(" (")
		buf.WriteString(oneLine(l.Unit))
		buf.WriteString(") - ")
		buf.WriteString(strconv.FormatInt(l.Total, 10))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// oneLine replaces control characters with spaces.
func oneLine(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
