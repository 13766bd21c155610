package fetcher

import (
	"html"
	"regexp"
)

// MPC-HC renders every variable as <p id="name">value</p>
var variableRe = regexp.MustCompile(`<p id="(\w+)">([^<]*)</p>`)

// ParseVariables extracts the name/value pairs of the variables page.
// Values are HTML-unescaped; later duplicates win.
func ParseVariables(page string) map[string]string {
	vars := make(map[string]string)
	for _, m := range variableRe.FindAllStringSubmatch(page, -1) {
		vars[m[1]] = html.UnescapeString(m[2])
	}
	return vars
}
