package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hadoopsh/hadoopsh/client"
	"github.com/olekukonko/tablewriter"
)

// Table is rendered as a fixed width text table.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) Append(row ...interface{}) {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(t.Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(t.Rows)
	table.Render()
}

// Echo prints a command result: strings as is, tables as tables, results
// as their body and everything else as indented JSON.
func Echo(w io.Writer, v interface{}) {
	switch value := v.(type) {
	case nil:
	case *client.Result:
		if value != nil {
			Echo(w, value.Value())
		}
	case string:
		fmt.Fprintln(w, strings.TrimRight(value, "\n"))
	case Table:
		value.Render(w)
	case *Table:
		value.Render(w)
	case error:
		fmt.Fprintf(w, "Error: %v\n", value)
	default:
		b, err := marshalIndent(value)
		if err != nil {
			fmt.Fprintln(w, value)
			return
		}
		w.Write(b)
	}
}

func marshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
