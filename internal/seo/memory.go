package seo

// MemoryHead is an in-memory HeadWriter keeping elements in insertion order.
// The zero value is ready to use.
type MemoryHead struct {
	elements []Element
}

var _ HeadWriter = (*MemoryHead)(nil)

// NewMemoryHead returns a head seeded with the given elements.
func NewMemoryHead(seed ...Element) *MemoryHead {
	h := &MemoryHead{}
	for _, el := range seed {
		h.Append(el)
	}
	return h
}

func (h *MemoryHead) Upsert(key Key, el Element) {
	found := false
	kept := h.elements[:0]
	for _, cur := range h.elements {
		if !key.Matches(cur) {
			kept = append(kept, cur)
			continue
		}
		if found {
			continue
		}
		found = true
		kept = append(kept, el.clone())
	}
	h.elements = kept
	if !found {
		h.elements = append(h.elements, el.clone())
	}
}

func (h *MemoryHead) RemoveAll(match Selector) int {
	removed := 0
	kept := h.elements[:0]
	for _, cur := range h.elements {
		if match(cur) {
			removed++
			continue
		}
		kept = append(kept, cur)
	}
	h.elements = kept
	return removed
}

func (h *MemoryHead) Append(el Element) {
	h.elements = append(h.elements, el.clone())
}

func (h *MemoryHead) Find(match Selector) []Element {
	var out []Element
	for _, cur := range h.elements {
		if match(cur) {
			out = append(out, cur.clone())
		}
	}
	return out
}

// Elements returns a copy of every element in order.
func (h *MemoryHead) Elements() []Element {
	return h.Find(func(Element) bool { return true })
}

// Len reports the number of elements.
func (h *MemoryHead) Len() int { return len(h.elements) }
