// Package notebook checks committed Jupyter notebooks for leftover outputs
// and for code patterns that should not appear in examples.
package notebook

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// Extension is the file suffix of Jupyter notebooks.
const Extension = ".ipynb"

// ErrInvalidNotebook is returned by Parse for documents that are not notebooks.
var ErrInvalidNotebook = errors.New("invalid notebook")

// Cell is the subset of a notebook cell that the checks look at.
type Cell struct {
	Type string

	// Source is the cell text as stored, one entry per line (newlines kept).
	Source []string

	// Dirty is true when the cell carries outputs or an execution count.
	Dirty bool
}

// IsCode reports whether the cell is a code cell.
func (c Cell) IsCode() bool {
	return c.Type == "code"
}

// Code returns the cell source as a single string.
func (c Cell) Code() string {
	return strings.Join(c.Source, "")
}

// Notebook is a parsed notebook document.
type Notebook struct {
	Cells []Cell
}

// Parse extracts the cells of a notebook document.
func Parse(data []byte) (*Notebook, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Join(ErrInvalidNotebook, errors.New("document is not valid JSON"))
	}

	cells := gjson.GetBytes(data, "cells")
	if !cells.IsArray() {
		return nil, errors.Join(ErrInvalidNotebook, errors.New("document has no 'cells' list"))
	}

	nb := &Notebook{}
	cells.ForEach(func(_, cell gjson.Result) bool {
		nb.Cells = append(nb.Cells, Cell{
			Type:   cell.Get("cell_type").String(),
			Source: sourceLines(cell.Get("source")),
			Dirty:  truthy(cell.Get("outputs")) || truthy(cell.Get("execution_count")),
		})
		return true
	})
	return nb, nil
}

// DirtyCells returns the number of cells that still carry outputs or an
// execution count.
func (n *Notebook) DirtyCells() int {
	count := 0
	for _, c := range n.Cells {
		if c.Dirty {
			count++
		}
	}
	return count
}

// sourceLines accepts both the list form and the single-string form that
// nbformat allows for cell sources.
func sourceLines(r gjson.Result) []string {
	if r.IsArray() {
		arr := r.Array()
		lines := make([]string, 0, len(arr))
		for _, line := range arr {
			lines = append(lines, line.String())
		}
		return lines
	}
	if r.Type == gjson.String {
		return []string{r.String()}
	}
	return nil
}

// truthy mirrors how notebook tooling treats a field as "set": missing, null,
// false, zero and empty containers or strings are all unset.
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return len(r.Map()) > 0
	default:
		return true
	}
}
