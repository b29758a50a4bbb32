package zdump

// DefaultBatchSize is the number of entries the result buffer grows by.
// Three entries cover a single year of a zone with daylight saving time.
const DefaultBatchSize = 3

// buffer is an append-only sequence of entries growing in fixed batches.
type buffer struct {
	entries []Entry
	batch   int
	limit   int // 0 means unlimited
}

func newBuffer(batch, limit int) *buffer {
	if batch < 1 {
		batch = DefaultBatchSize
	}
	return &buffer{entries: make([]Entry, 0, batch), batch: batch, limit: limit}
}

func (b *buffer) add(e Entry) error {
	if b.limit > 0 && len(b.entries) >= b.limit {
		return ErrBufferLimit
	}
	if len(b.entries) == cap(b.entries) {
		grown := make([]Entry, len(b.entries), cap(b.entries)+b.batch)
		copy(grown, b.entries)
		b.entries = grown
	}
	b.entries = append(b.entries, e)
	return nil
}

func (b *buffer) last() Entry {
	return b.entries[len(b.entries)-1]
}
