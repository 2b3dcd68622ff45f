package testcases

// All contains all test cases, grouped by category.
var All = map[string][]TestCase{
	"merge":    mergeCases,
	"repair":   repairCases,
	"mismatch": mismatchCases,
}
