package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/flowviz/sankey/pkg/errors"
	"github.com/flowviz/sankey/pkg/flow"
	"github.com/flowviz/sankey/pkg/flow/transform"
)

// Transform converts the configured input into a flow graph.
//
// When opts.Rows is set, the rows are used directly. Otherwise opts.Input
// names a CSV file whose first record is the header. The returned bytes
// are the raw input, used by the runner for content-addressed cache keys.
func Transform(opts Options) (*flow.Graph, []byte, error) {
	if opts.Rows != nil {
		g := transform.FromRows(opts.Rows, opts.Mapping)
		fingerprint, err := json.Marshal(opts.Rows)
		if err != nil {
			return nil, nil, fmt.Errorf("fingerprint rows: %w", err)
		}
		return g, fingerprint, nil
	}

	if err := errors.ValidatePath(opts.Input); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read input")
	}

	res, err := transform.FromCSV(bytes.NewReader(data), opts.Mapping)
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}

	if opts.Logger != nil {
		opts.Logger.Debug("parsed input",
			"rows", res.Rows,
			"nodes", res.Graph.NodeCount(),
			"links", res.Graph.LinkCount())
	}

	return res.Graph, data, nil
}
