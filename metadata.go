package notebook

// CellMetadata is a flat record of cell-level configuration. Pointer
// fields distinguish "unset" (nil) from an explicit value; an unset field
// falls back to the owning document's default where one exists. The record
// is always replaced whole, never patched in place.
type CellMetadata struct {
	Editable          *bool
	BreakpointMargin  *bool
	HasExecutionOrder *bool
	ExecutionOrder    *int
	InputCollapsed    *bool
	OutputCollapsed   *bool

	// Custom carries free-form data. Values must be JSON-marshalable for
	// the identity hash to account for them.
	Custom map[string]any
}

// Metadata key names, as used by TransientOptions.TransientMetadata.
const (
	KeyEditable          = "editable"
	KeyBreakpointMargin  = "breakpointMargin"
	KeyHasExecutionOrder = "hasExecutionOrder"
	KeyExecutionOrder    = "executionOrder"
	KeyInputCollapsed    = "inputCollapsed"
	KeyOutputCollapsed   = "outputCollapsed"
	KeyCustom            = "custom"
)

// Bool returns a pointer to v, for setting optional metadata fields.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v, for setting optional metadata fields.
func Int(v int) *int {
	return &v
}

// clone returns a deep copy of the metadata record.
func (m CellMetadata) clone() CellMetadata {
	out := CellMetadata{
		Editable:          copyBool(m.Editable),
		BreakpointMargin:  copyBool(m.BreakpointMargin),
		HasExecutionOrder: copyBool(m.HasExecutionOrder),
		ExecutionOrder:    copyInt(m.ExecutionOrder),
		InputCollapsed:    copyBool(m.InputCollapsed),
		OutputCollapsed:   copyBool(m.OutputCollapsed),
	}
	if m.Custom != nil {
		out.Custom = make(map[string]any, len(m.Custom))
		for k, v := range m.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// asMap renders the set fields under their key names, for hash filtering.
func (m CellMetadata) asMap() map[string]any {
	out := make(map[string]any)
	if m.Editable != nil {
		out[KeyEditable] = *m.Editable
	}
	if m.BreakpointMargin != nil {
		out[KeyBreakpointMargin] = *m.BreakpointMargin
	}
	if m.HasExecutionOrder != nil {
		out[KeyHasExecutionOrder] = *m.HasExecutionOrder
	}
	if m.ExecutionOrder != nil {
		out[KeyExecutionOrder] = *m.ExecutionOrder
	}
	if m.InputCollapsed != nil {
		out[KeyInputCollapsed] = *m.InputCollapsed
	}
	if m.OutputCollapsed != nil {
		out[KeyOutputCollapsed] = *m.OutputCollapsed
	}
	if len(m.Custom) > 0 {
		out[KeyCustom] = m.Custom
	}
	return out
}

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// DocumentDefaults carries the document-level metadata defaults a cell
// falls back to when its own metadata leaves a field unset.
type DocumentDefaults struct {
	CellEditable          bool
	CellHasExecutionOrder bool
}

// TransientOptions marks which inputs are excluded from identity hashing.
// Supplied once at cell construction and never mutated afterwards.
type TransientOptions struct {
	// TransientMetadata lists metadata keys excluded from the hash.
	TransientMetadata []string

	// TransientOutputs excludes the output list from the hash entirely.
	TransientOutputs bool
}
