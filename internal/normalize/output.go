package normalize

import (
	"hdrnorm/internal/header"
	"hdrnorm/internal/project"
)

// Output is the YAML document written for a Result.
type Output struct {
	Meta    *header.Header `yaml:"meta"`
	Rows    int            `yaml:"rows,omitempty"`
	Columns []OutputColumn `yaml:"columns,omitempty"`
}

// OutputColumn is the YAML form of a projected column. Type is the arrow
// type name of the values.
type OutputColumn struct {
	Name   string         `yaml:"name"`
	Unit   string         `yaml:"unit,omitempty"`
	Type   string         `yaml:"type"`
	Values []header.Value `yaml:"values,flow"`
}

// Output returns the document to serialize for r.
func (r *Result) Output() Output {
	out := Output{Meta: r.Header}
	if r.Table == nil {
		return out
	}

	out.Rows = r.Table.Rows()

	for _, c := range r.Table.Columns() {
		out.Columns = append(out.Columns, outputColumn(c))
	}

	return out
}

func outputColumn(c *project.Column) OutputColumn {
	oc := OutputColumn{Name: c.Name, Unit: c.Unit, Values: c.Values}

	// Columns built by Project always hold scalars.
	if dt, err := c.DataType(); err == nil {
		oc.Type = dt.Name()
	}

	return oc
}
