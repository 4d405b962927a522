// Package format renders amounts and counts the Norwegian way: digits
// grouped by spaces, whole kroner.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"lonnstall/internal/stats"
)

// thousandsFormat groups digits with a space and drops decimals.
const thousandsFormat = "# ###."

// Kroner renders an amount as whole kroner, e.g. "1 234 568 kr".
func Kroner(v float64) string {
	return Number(int64(stats.Round(v))) + " kr"
}

// Number groups the digits of n in threes.
func Number(n int64) string {
	return humanize.FormatInteger(thousandsFormat, int(n))
}

// Signed renders a percentage with an explicit sign.
func Signed(p int) string {
	if p > 0 {
		return fmt.Sprintf("+%d %%", p)
	}
	return fmt.Sprintf("%d %%", p)
}

// YesNo is the table rendering of a flag.
func YesNo(b bool) string {
	if b {
		return "Ja"
	}
	return "Nei"
}
