package notebook

import "github.com/google/uuid"

// CellData is a detached snapshot of a cell: plain values with no buffer,
// no subscriptions, and no ties to the source cell. It doubles as the
// construction payload for inserting the snapshot into a document.
type CellData struct {
	Source   string
	Language string
	Kind     CellKind
	Metadata CellMetadata
	Outputs  []OutputData
}

// CloneCell produces a detached snapshot of the cell's current state.
// Output records receive freshly generated identifiers so a pasted copy
// can never collide with the original's output identity. The metadata
// copy carries the fixed fields and custom data, but not the execution
// order, which is a property of the original run.
func CloneCell(c *Cell) CellData {
	meta := c.Metadata().clone()
	meta.ExecutionOrder = nil

	outs := make([]OutputData, 0, len(c.outputs))
	for _, o := range c.outputs {
		outs = append(outs, OutputData{
			ID:    uuid.NewString(),
			Items: append([]OutputItem(nil), o.Items...),
		})
	}

	return CellData{
		Source:   c.Value(),
		Language: c.Language(),
		Kind:     c.Kind(),
		Metadata: meta,
		Outputs:  outs,
	}
}
