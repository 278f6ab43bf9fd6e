package notebook

import (
	"encoding/binary"
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

// The identity hash is a fold of per-component xxhash values: language,
// full text content, the filtered metadata snapshot, and the output list
// (or an empty placeholder when outputs are transient). Metadata is
// rendered to JSON for the digest; encoding/json writes map keys in sorted
// order, which keeps the rendering canonical.

const hashFoldPrime = 1099511628211

// foldHash mixes a component hash into the running composite.
func foldHash(acc, component uint64) uint64 {
	return acc*hashFoldPrime ^ component
}

// computeHash derives the composite identity hash from the cell's current
// state. The caller is responsible for caching.
func (c *Cell) computeHash() uint64 {
	h := xxhash.Sum64String(c.language)
	h = foldHash(h, xxhash.Sum64String(c.Value()))
	h = foldHash(h, hashMetadata(c.filteredMetadata()))
	if c.transientOutputs {
		h = foldHash(h, hashOutputs(nil))
	} else {
		h = foldHash(h, hashOutputs(c.outputs))
	}
	return h
}

// filteredMetadata renders the metadata record as a key map with the
// cell's transient keys removed.
func (c *Cell) filteredMetadata() map[string]any {
	m := c.metadata.asMap()
	for key := range c.transientMeta {
		delete(m, key)
	}
	return m
}

func hashMetadata(m map[string]any) uint64 {
	b, err := json.Marshal(m)
	if err != nil {
		// Unmarshalable custom data; hash the failure so the value is
		// at least stable for the same record.
		return xxhash.Sum64String(err.Error())
	}
	return xxhash.Sum64(b)
}

// hashOutputs digests output content: the mime type and payload of every
// representation, in order. Record identifiers are deliberately excluded
// so a cloned cell (fresh identifiers, same content) hashes identically.
func hashOutputs(outputs []*Output) uint64 {
	d := xxhash.New()
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(outputs)))
	d.Write(n[:])
	for _, o := range outputs {
		for _, item := range o.Items {
			d.WriteString(item.Mime)
			d.Write([]byte{0})
			d.Write(item.Data)
			d.Write([]byte{0})
		}
		d.Write([]byte{0xff})
	}
	return d.Sum64()
}
