package notebook

import "github.com/google/uuid"

// OutputItem is one rendered representation of an output: a mime-typed
// payload such as text/plain or image/png.
type OutputItem struct {
	Mime string
	Data []byte
}

// Output is one output record: a generation-unique identifier wrapping an
// ordered list of representations. Records are owned exclusively by their
// cell's output list and are replaced, never mutated in place.
type Output struct {
	ID    string
	Items []OutputItem
}

// NewOutput creates an output record with a freshly generated identifier.
func NewOutput(items ...OutputItem) *Output {
	return &Output{
		ID:    uuid.NewString(),
		Items: items,
	}
}

// OutputData is the detached, transferable form of an output record, used
// at cell construction and produced by cloning. An empty ID is assigned a
// fresh identifier when the record is attached to a cell.
type OutputData struct {
	ID    string
	Items []OutputItem
}

// OutputSplice is one positional edit of the output list: starting at
// Start, delete DeleteCount records and insert Outputs in their place.
// Indices are interpreted against the list as it was before any splice in
// the same batch was applied.
type OutputSplice struct {
	Start       int
	DeleteCount int
	Outputs     []*Output
}

// attachOutputs converts construction DTOs into owned output records,
// assigning identifiers where missing.
func attachOutputs(data []OutputData) []*Output {
	outs := make([]*Output, 0, len(data))
	for _, d := range data {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		outs = append(outs, &Output{
			ID:    id,
			Items: append([]OutputItem(nil), d.Items...),
		})
	}
	return outs
}

// applySplice returns list with one splice applied. Start and DeleteCount
// clamp to the list, array-splice style, so a splice whose pre-batch
// indices now reach past a list shrunk by other splices in the same batch
// still applies cleanly instead of leaving the list half edited.
func applySplice(list []*Output, s OutputSplice) []*Output {
	start := min(s.Start, len(list))
	del := min(s.DeleteCount, len(list)-start)
	out := make([]*Output, 0, len(list)-del+len(s.Outputs))
	out = append(out, list[:start]...)
	out = append(out, s.Outputs...)
	out = append(out, list[start+del:]...)
	return out
}
