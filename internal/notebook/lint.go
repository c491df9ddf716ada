package notebook

import (
	"fmt"
	"regexp"
)

var (
	warningFilterRegex    = regexp.MustCompile(`warnings\.(simple)?filter`)
	delayedDecoratorRegex = regexp.MustCompile(`@delayed`)
)

// LintCodeCell checks the source lines of one code cell and returns one
// message per problem found. fileName only appears in the messages.
func LintCodeCell(fileName string, lines []string) []string {
	return lintCode(fileName, Cell{Type: "code", Source: lines}.Code())
}

func lintCode(fileName, code string) []string {
	var errs []string

	if warningFilterRegex.MatchString(code) {
		errs = append(errs, fmt.Sprintf(
			"Found use of warnings.simplefilter() or warnings.filterwarnings() in %s. "+
				"Do not filter out warnings in example notebooks. Try to fix them or "+
				"add text explaining why they can be safely ignored.", fileName))
	}

	if delayedDecoratorRegex.MatchString(code) {
		errs = append(errs, fmt.Sprintf(
			"Found a use of '@delayed' in %s. "+
				"Instead, 'import dask' and then use '@dask.delayed'.", fileName))
	}

	return errs
}

// Check runs every notebook rule against a parsed notebook and returns the
// resulting messages: lint findings per code cell in cell order, then one
// message for leftover outputs if any cell is dirty.
func Check(fileName string, nb *Notebook) []string {
	var errs []string
	for _, cell := range nb.Cells {
		if cell.IsCode() {
			errs = append(errs, lintCode(fileName, cell.Code())...)
		}
	}

	if dirty := nb.DirtyCells(); dirty > 0 {
		errs = append(errs, fmt.Sprintf(
			"Found %d non-empty cells in '%s'. Clear all outputs and re-commit this file.",
			dirty, fileName))
	}
	return errs
}
