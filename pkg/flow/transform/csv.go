package transform

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/flowviz/sankey/pkg/flow"
)

// Result pairs the aggregated graph with the raw row count, which the CLI
// reports after a transform.
type Result struct {
	Graph *flow.Graph
	Rows  int
}

// FromCSV reads comma-separated rows, using the first record as the header,
// and aggregates them into a flow graph via [FromRows]. Short records are
// padded by column position; reading errors abort the transform.
func FromCSV(r io.Reader, m Mapping) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells drop below

	header, err := reader.Read()
	if err == io.EOF {
		return &Result{Graph: FromRows(nil, m)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return &Result{Graph: FromRows(rows, m), Rows: len(rows)}, nil
}
