package embedded_test

import (
	"bytes"
	"testing"

	"vstore/internal/individual"
	"vstore/internal/storage"
	"vstore/internal/storage/embedded"
	"vstore/internal/storage/embedded/bolt"
)

func tempStore(t *testing.T) *embedded.Store {
	t.Helper()
	return embedded.Open(bolt.Binding(), t.TempDir(), storage.ReadWrite, embedded.DefaultReopenThreshold)
}

func TestPutGetRemoveScenario(t *testing.T) {
	s := tempStore(t)

	if r := s.PutValue(storage.Individuals, "user:1", "Ivan"); !r.IsOk() {
		t.Fatalf("put failed: %+v", r)
	}
	r := s.GetValue(storage.Individuals, "user:1")
	if !r.IsOk() || r.Value != "Ivan" {
		t.Fatalf("expected Ok(Ivan), got %+v", r)
	}

	if r := s.RemoveValue(storage.Individuals, "user:1"); !r.IsOk() {
		t.Fatalf("remove failed: %+v", r)
	}
	if r := s.GetValue(storage.Individuals, "user:1"); r.Code != storage.CodeNotFound {
		t.Fatalf("expected NotFound after remove, got %v", r.Code)
	}
	if c := s.Count(storage.Individuals); !c.IsOk() || c.Value != 0 {
		t.Fatalf("expected count 0, got %+v", c)
	}
}

func TestRemoveAbsentKey(t *testing.T) {
	s := tempStore(t)
	if r := s.RemoveValue(storage.Individuals, "nonexistent"); r.Code != storage.CodeNotFound {
		t.Fatalf("expected NotFound for absent remove, got %v", r.Code)
	}
}

func TestRawRoundTrip(t *testing.T) {
	s := tempStore(t)
	data := []byte{0, 255, 128, 42}
	if r := s.PutRawValue(storage.Tickets, "raw:key1", data); !r.IsOk() {
		t.Fatalf("put raw failed: %+v", r)
	}
	r := s.GetRawValue(storage.Tickets, "raw:key1")
	if !r.IsOk() || !bytes.Equal(r.Value, data) {
		t.Fatalf("expected %v, got %+v", data, r)
	}
}

func TestNamespaceIsolation(t *testing.T) {
	s := tempStore(t)
	s.PutValue(storage.Individuals, "k", "from-individuals")
	s.PutValue(storage.Tickets, "k", "from-tickets")

	ri := s.GetValue(storage.Individuals, "k")
	rt := s.GetValue(storage.Tickets, "k")
	if ri.Value != "from-individuals" || rt.Value != "from-tickets" {
		t.Fatalf("namespaces interfere: %+v / %+v", ri, rt)
	}
	if c := s.Count(storage.Individuals); c.Value != 1 {
		t.Fatalf("individuals count = %d", c.Value)
	}
	if c := s.Count(storage.Tickets); c.Value != 1 {
		t.Fatalf("tickets count = %d", c.Value)
	}
	if c := s.Count(storage.Az); c.Value != 0 {
		t.Fatalf("az count = %d", c.Value)
	}
}

func TestCountAfterInserts(t *testing.T) {
	s := tempStore(t)
	keys := []string{"a", "b", "c", "d", "e"}
	for _, k := range keys {
		if r := s.PutValue(storage.Az, k, "v-"+k); !r.IsOk() {
			t.Fatalf("put %s failed: %+v", k, r)
		}
	}
	if c := s.Count(storage.Az); !c.IsOk() || c.Value != len(keys) {
		t.Fatalf("expected count %d, got %+v", len(keys), c)
	}
}

func TestGetIndividual(t *testing.T) {
	s := tempStore(t)
	var ind individual.Individual

	if r := s.GetIndividual(storage.Individuals, "missing", &ind); r.Code != storage.CodeNotFound {
		t.Fatalf("expected NotFound, got %v", r.Code)
	}

	valid := `{"@": "test:ind1", "rdf:type": [{"type": "Uri", "data": "test:Person"}]}`
	s.PutValue(storage.Individuals, "test:ind1", valid)
	if r := s.GetIndividual(storage.Individuals, "test:ind1", &ind); !r.IsOk() {
		t.Fatalf("expected Ok, got %+v", r)
	}
	if ind.ID() != "test:ind1" {
		t.Fatalf("id = %q", ind.ID())
	}

	s.PutValue(storage.Individuals, "test:bad", "not a binobj")
	if r := s.GetIndividual(storage.Individuals, "test:bad", &ind); r.Code != storage.CodeUnprocessable {
		t.Fatalf("expected UnprocessableEntity, got %v", r.Code)
	}
}

func TestZeroCopyReadTxn(t *testing.T) {
	s := tempStore(t)
	payload := []byte("zero-copy payload")
	s.PutRawValue(storage.Individuals, "zc", payload)

	txn, err := s.Instance(storage.Individuals).BeginRead()
	if err != nil {
		t.Fatal(err)
	}
	defer txn.Close()

	first, ok := txn.Get("zc")
	if !ok {
		t.Fatal("first read missed")
	}
	second, ok := txn.Get("zc")
	if !ok {
		t.Fatal("second read missed")
	}
	if !bytes.Equal(first, payload) || !bytes.Equal(second, payload) {
		t.Fatalf("reads differ from stored payload: %q / %q", first, second)
	}
	if len(first) != len(payload) {
		t.Fatalf("length %d, want %d", len(first), len(payload))
	}

	if _, ok := txn.Get("missing"); ok {
		t.Fatal("missing key should read as a miss")
	}
}

func TestSharedEnvironmentAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	a := embedded.Open(bolt.Binding(), dir, storage.ReadWrite, 0)
	b := embedded.Open(bolt.Binding(), dir, storage.ReadWrite, 0)

	if r := a.PutValue(storage.Individuals, "shared", "through-a"); !r.IsOk() {
		t.Fatalf("put through a failed: %+v", r)
	}
	r := b.GetValue(storage.Individuals, "shared")
	if !r.IsOk() || r.Value != "through-a" {
		t.Fatalf("write through a not visible through b: %+v", r)
	}
}

func TestTypedGets(t *testing.T) {
	s := tempStore(t)
	in := s.Instance(storage.Individuals)

	in.Put("u64", []byte{0x2a, 0, 0, 0, 0, 0, 0, 0})
	if v, ok := in.GetUint64("u64"); !ok || v != 42 {
		t.Fatalf("GetUint64 = (%d, %v)", v, ok)
	}
	if v, ok := in.GetInt64("u64"); !ok || v != 42 {
		t.Fatalf("GetInt64 = (%d, %v)", v, ok)
	}

	in.Put("u32", []byte{0x07, 0, 0, 0})
	if v, ok := in.GetUint32("u32"); !ok || v != 7 {
		t.Fatalf("GetUint32 = (%d, %v)", v, ok)
	}
	if v, ok := in.GetInt32("u32"); !ok || v != 7 {
		t.Fatalf("GetInt32 = (%d, %v)", v, ok)
	}

	// Wrong width reads as a miss, not a fault.
	if _, ok := in.GetUint64("u32"); ok {
		t.Fatal("4-byte value should not decode as uint64")
	}

	in.Put("text", []byte("hello"))
	if v, ok := in.GetString("text"); !ok || v != "hello" {
		t.Fatalf("GetString = (%q, %v)", v, ok)
	}
	in.Put("bin", []byte{0xff, 0xfe})
	if _, ok := in.GetString("bin"); ok {
		t.Fatal("invalid UTF-8 should not decode as string")
	}
}

func TestReopenThreshold(t *testing.T) {
	s := embedded.Open(bolt.Binding(), t.TempDir(), storage.ReadWrite, 3)
	s.PutValue(storage.Individuals, "k", "v")

	// Drive the read counter over the threshold; reads must keep working
	// across the reset.
	for i := 0; i < 10; i++ {
		r := s.GetValue(storage.Individuals, "k")
		if !r.IsOk() || r.Value != "v" {
			t.Fatalf("read %d failed: %+v", i, r)
		}
	}
}

func TestKeysSnapshot(t *testing.T) {
	s := tempStore(t)
	for _, k := range []string{"b", "a", "c"} {
		s.PutValue(storage.Tickets, k, "v")
	}
	keys := s.Instance(storage.Tickets).Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %v", keys)
	}
	// Engine order is sorted for B-tree engines.
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("unexpected key order: %v", keys)
	}
}

func TestEmptyValue(t *testing.T) {
	s := tempStore(t)
	if r := s.PutValue(storage.Individuals, "empty", ""); !r.IsOk() {
		t.Fatalf("put failed: %+v", r)
	}
	r := s.GetValue(storage.Individuals, "empty")
	if !r.IsOk() || r.Value != "" {
		t.Fatalf("expected Ok(\"\"), got %+v", r)
	}
}
