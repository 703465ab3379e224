package embedded

// ReadTxn is an explicit read-only transaction for repeated zero-copy reads.
// Byte slices returned by Get borrow mapped memory whenever the engine can
// grant a borrow and are valid only until Close; callers must not retain them
// past the transaction's scope.
type ReadTxn struct {
	txn Txn
}

// BeginRead opens a read-only transaction against the shared environment.
// Multiple Get calls may share it; the caller must Close it.
func (in *Instance) BeginRead() (*ReadTxn, error) {
	txn, err := in.eng.Begin(false)
	if err != nil {
		return nil, err
	}
	return &ReadTxn{txn: txn}, nil
}

// Get returns the value for key without copying when the engine supports
// borrowing from its page cache. False on absence; lookup faults are logged
// and also read as a miss.
func (t *ReadTxn) Get(key string) ([]byte, bool) {
	val, err := t.txn.Get([]byte(key))
	if err == ErrNotFound {
		return nil, false
	}
	if err != nil {
		elog.Error("get in read transaction failed", "key", key, "err", err)
		return nil, false
	}
	return val, true
}

// Close ends the transaction, invalidating every slice Get handed out.
func (t *ReadTxn) Close() {
	t.txn.Rollback()
}
