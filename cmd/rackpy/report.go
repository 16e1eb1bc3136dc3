package main

import (
	"fmt"
	"io"

	"rackpy/internal/diagfmt"
	"rackpy/internal/driver"
)

// writeTranslation печатает результат одной единицы. С showTree перед Python
// выводится дерево разбора с отступами, без позиций.
func writeTranslation(w io.Writer, res *driver.FileResult, showTree bool) error {
	if showTree && res.Builder != nil && len(res.Roots) > 0 {
		fmt.Fprintln(w, "Parsed Racket code:")
		if err := diagfmt.FormatASTIndented(w, res.Builder, res.Roots); err != nil {
			return err
		}
	}
	if !res.OK() {
		return res.Err
	}
	if showTree {
		fmt.Fprintln(w, "\nTranslated Python code:")
	}
	if res.Python != "" {
		fmt.Fprintln(w, res.Python)
	}
	return nil
}

// writeLineResults печатает построчный прогон и возвращает число упавших строк.
func writeLineResults(w io.Writer, results []driver.LineResult, showTree bool) int {
	failed := 0
	for i, r := range results {
		// строка не запускалась: прогон отменён раньше
		if r.FileResult == nil {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Running line: %s\n", r.Source)
		if err := writeTranslation(w, r.FileResult, showTree); err != nil {
			failed++
			fmt.Fprintf(w, "Error running line: %s\n", describeError(err))
		}
	}
	return failed
}
