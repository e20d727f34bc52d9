package storage

// PrefixDB scopes every key of an inner DB under a fixed prefix, so several
// logical stores (one per network, say) can share one database.
type PrefixDB struct {
	inner  DB
	prefix []byte
}

// NewPrefixDB wraps inner with the given prefix.
func NewPrefixDB(inner DB, prefix []byte) *PrefixDB {
	return &PrefixDB{inner: inner, prefix: cloneBytes(prefix)}
}

// Prefix returns a copy of the namespace prefix.
func (p *PrefixDB) Prefix() []byte {
	return cloneBytes(p.prefix)
}

func (p *PrefixDB) key(k []byte) []byte {
	out := make([]byte, len(p.prefix)+len(k))
	copy(out, p.prefix)
	copy(out[len(p.prefix):], k)
	return out
}

// Get retrieves a value by key.
func (p *PrefixDB) Get(key []byte) ([]byte, error) {
	return p.inner.Get(p.key(key))
}

// Put stores a key-value pair.
func (p *PrefixDB) Put(key, value []byte) error {
	return p.inner.Put(p.key(key), value)
}

// Delete removes a key.
func (p *PrefixDB) Delete(key []byte) error {
	return p.inner.Delete(p.key(key))
}

// Has reports whether key exists.
func (p *PrefixDB) Has(key []byte) (bool, error) {
	return p.inner.Has(p.key(key))
}

// ForEach walks keys under prefix inside this namespace. Keys passed to fn
// have the namespace stripped.
func (p *PrefixDB) ForEach(prefix []byte, fn func(key, value []byte) error) error {
	n := len(p.prefix)
	return p.inner.ForEach(p.key(prefix), func(key, value []byte) error {
		return fn(key[n:], value)
	})
}

// DeleteAll removes every key in the namespace.
func (p *PrefixDB) DeleteAll() error {
	var keys [][]byte
	err := p.inner.ForEach(p.prefix, func(key, _ []byte) error {
		keys = append(keys, cloneBytes(key))
		return nil
	})
	if err != nil {
		return err
	}

	b := NewBatchFor(p.inner)
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return b.Commit()
}

// Close is a no-op; the inner DB owns its lifecycle.
func (p *PrefixDB) Close() error {
	return nil
}

// NewBatch returns a batch whose keys land in this namespace.
func (p *PrefixDB) NewBatch() Batch {
	return &prefixBatch{inner: NewBatchFor(p.inner), db: p}
}

type prefixBatch struct {
	inner Batch
	db    *PrefixDB
}

func (b *prefixBatch) Put(key, value []byte) error { return b.inner.Put(b.db.key(key), value) }
func (b *prefixBatch) Delete(key []byte) error     { return b.inner.Delete(b.db.key(key)) }
func (b *prefixBatch) Commit() error               { return b.inner.Commit() }

// NewBatchFor returns db's own batch when it implements Batcher, otherwise a
// buffered batch that replays the writes one by one on Commit.
func NewBatchFor(db DB) Batch {
	if b, ok := db.(Batcher); ok {
		return b.NewBatch()
	}
	return &replayBatch{db: db}
}

type replayOp struct {
	key, value []byte
	del        bool
}

type replayBatch struct {
	db  DB
	ops []replayOp
}

func (b *replayBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, replayOp{key: cloneBytes(key), value: cloneBytes(value)})
	return nil
}

func (b *replayBatch) Delete(key []byte) error {
	b.ops = append(b.ops, replayOp{key: cloneBytes(key), del: true})
	return nil
}

func (b *replayBatch) Commit() error {
	for _, op := range b.ops {
		var err error
		if op.del {
			err = b.db.Delete(op.key)
		} else {
			err = b.db.Put(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
