package notebook

import "testing"

func TestEvaluateMetadataFallsBackToDefaults(t *testing.T) {
	c := newTestCell(t, CellOptions{})

	m := c.EvaluateMetadata(DocumentDefaults{CellEditable: false, CellHasExecutionOrder: true})
	if m.Editable == nil || *m.Editable != false {
		t.Error("Expected editable=false from document default")
	}
	if m.HasExecutionOrder == nil || *m.HasExecutionOrder != true {
		t.Error("Expected hasExecutionOrder=true from document default")
	}
}

func TestEvaluateMetadataPrefersCellValue(t *testing.T) {
	c := newTestCell(t, CellOptions{
		Metadata: &CellMetadata{Editable: Bool(true)},
	})

	m := c.EvaluateMetadata(DocumentDefaults{CellEditable: false})
	if m.Editable == nil || *m.Editable != true {
		t.Error("Expected cell-level editable=true to win over the default")
	}
}

func TestEvaluateMetadataDoesNotMutateStored(t *testing.T) {
	c := newTestCell(t, CellOptions{})

	c.EvaluateMetadata(DocumentDefaults{CellEditable: true})
	if c.Metadata().Editable != nil {
		t.Error("Expected stored metadata to stay unset")
	}
}

func TestEvaluateMetadataReturnsIndependentCopy(t *testing.T) {
	c := newTestCell(t, CellOptions{
		Metadata: &CellMetadata{Custom: map[string]any{"tag": "original"}},
	})

	m := c.EvaluateMetadata(DocumentDefaults{})
	m.Custom["tag"] = "changed"

	if c.Metadata().Custom["tag"] != "original" {
		t.Error("Expected stored custom data unaffected by the evaluated copy")
	}
}

func TestSetMetadataCopiesRecord(t *testing.T) {
	c := newTestCell(t, CellOptions{Source: "x"})

	record := CellMetadata{Custom: map[string]any{"tag": "original"}}
	c.SetMetadata(record)
	hash := c.HashValue()

	// The caller's map must not alias the stored record: mutating it after
	// the set would change stored state without invalidating the hash.
	record.Custom["tag"] = "changed"

	if c.Metadata().Custom["tag"] != "original" {
		t.Error("Expected stored metadata detached from the caller's record")
	}
	if c.HashValue() != hash {
		t.Error("Expected hash stable when the caller mutates its own record")
	}
}

func TestTransientMetadataExcludedFromHash(t *testing.T) {
	opts := CellOptions{
		Source:    "content",
		Metadata:  &CellMetadata{ExecutionOrder: Int(1)},
		Transient: TransientOptions{TransientMetadata: []string{KeyExecutionOrder}},
	}
	c := newTestCell(t, opts)

	before := c.HashValue()
	c.SetMetadata(CellMetadata{ExecutionOrder: Int(42)})
	if c.HashValue() != before {
		t.Error("Expected transient metadata change to leave the hash value unchanged")
	}

	c.SetMetadata(CellMetadata{ExecutionOrder: Int(42), Editable: Bool(false)})
	if c.HashValue() == before {
		t.Error("Expected non-transient metadata change to change the hash")
	}
}

func TestMetadataHashCoversCustomData(t *testing.T) {
	c := newTestCell(t, CellOptions{Source: "x"})

	before := c.HashValue()
	c.SetMetadata(CellMetadata{Custom: map[string]any{"slideshow": "skip"}})
	if c.HashValue() == before {
		t.Error("Expected custom data to contribute to the hash")
	}
}
