package storage

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

// runDBContract exercises the behaviour every DB implementation shares.
func runDBContract(t *testing.T, open func(t *testing.T) DB) {
	t.Helper()

	t.Run("PutGet", func(t *testing.T) {
		db := open(t)
		if err := db.Put([]byte("k"), []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := db.Get([]byte("k"))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !bytes.Equal(got, []byte("v")) {
			t.Errorf("Get = %q, want %q", got, "v")
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		db := open(t)
		if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get missing: err = %v, want ErrNotFound", err)
		}
		ok, err := db.Has([]byte("missing"))
		if err != nil || ok {
			t.Errorf("Has missing = %v, %v", ok, err)
		}
		if err := db.Delete([]byte("missing")); err != nil {
			t.Errorf("Delete missing: %v", err)
		}
	})

	t.Run("OverwriteAndDelete", func(t *testing.T) {
		db := open(t)
		db.Put([]byte("k"), []byte("first"))
		db.Put([]byte("k"), []byte("second"))
		got, _ := db.Get([]byte("k"))
		if string(got) != "second" {
			t.Errorf("after overwrite = %q", got)
		}
		if err := db.Delete([]byte("k")); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok, _ := db.Has([]byte("k")); ok {
			t.Error("key survived Delete")
		}
	})

	t.Run("CallerBufferReuse", func(t *testing.T) {
		db := open(t)
		buf := []byte("original")
		db.Put([]byte("k"), buf)
		copy(buf, "XXXXXXXX")
		got, _ := db.Get([]byte("k"))
		if string(got) != "original" {
			t.Errorf("stored value aliased caller buffer: %q", got)
		}
	})

	t.Run("BinaryKeysAndEmptyValue", func(t *testing.T) {
		db := open(t)
		key := []byte{0x00, 0x01, 0xff}
		if err := db.Put(key, []byte{}); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := db.Get(key)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("value = %x, want empty", got)
		}
	})

	t.Run("ForEachOrderedByKey", func(t *testing.T) {
		db := open(t)
		for _, k := range []string{"p/c", "p/a", "q/x", "p/b"} {
			db.Put([]byte(k), []byte(k))
		}
		var seen []string
		err := db.ForEach([]byte("p/"), func(key, value []byte) error {
			if !bytes.Equal(key, value) {
				t.Errorf("value for %q = %q", key, value)
			}
			seen = append(seen, string(key))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach: %v", err)
		}
		if fmt.Sprint(seen) != "[p/a p/b p/c]" {
			t.Errorf("ForEach keys = %v", seen)
		}
	})

	t.Run("ForEachStopsOnError", func(t *testing.T) {
		db := open(t)
		for i := 0; i < 5; i++ {
			db.Put([]byte(fmt.Sprintf("s/%d", i)), nil)
		}
		stop := errors.New("stop")
		n := 0
		err := db.ForEach([]byte("s/"), func(_, _ []byte) error {
			n++
			if n == 2 {
				return stop
			}
			return nil
		})
		if !errors.Is(err, stop) || n != 2 {
			t.Errorf("ForEach = %v after %d calls", err, n)
		}
	})

	t.Run("Batch", func(t *testing.T) {
		db := open(t)
		db.Put([]byte("gone"), []byte("x"))

		b := NewBatchFor(db)
		b.Put([]byte("a"), []byte("1"))
		b.Put([]byte("b"), []byte("2"))
		b.Delete([]byte("gone"))
		if ok, _ := db.Has([]byte("a")); ok {
			t.Error("batch write visible before Commit")
		}
		if err := b.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		for _, k := range []string{"a", "b"} {
			if ok, _ := db.Has([]byte(k)); !ok {
				t.Errorf("%s missing after Commit", k)
			}
		}
		if ok, _ := db.Has([]byte("gone")); ok {
			t.Error("batched delete not applied")
		}
	})
}

func TestMemoryDB(t *testing.T) {
	runDBContract(t, func(t *testing.T) DB {
		return NewMemory()
	})
}

func TestBadgerDB(t *testing.T) {
	runDBContract(t, func(t *testing.T) DB {
		db, err := NewBadger(t.TempDir(), BadgerOptions{})
		if err != nil {
			t.Fatalf("NewBadger: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return db
	})
}

func TestBadgerDB_InMemory(t *testing.T) {
	runDBContract(t, func(t *testing.T) DB {
		db, err := NewBadger("", BadgerOptions{InMemory: true})
		if err != nil {
			t.Fatalf("NewBadger: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return db
	})
}

func TestBadgerDB_Persistence(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(dir, BadgerOptions{})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	db.Put([]byte("persist"), []byte("data"))
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = NewBadger(dir, BadgerOptions{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := db.Get([]byte("persist"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("persisted value = %q", got)
	}
}

func TestBadgerDB_Locked(t *testing.T) {
	dir := t.TempDir()
	db, err := NewBadger(dir, BadgerOptions{})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer db.Close()

	if _, err := NewBadger(dir, BadgerOptions{}); err == nil {
		t.Error("second open of a locked directory succeeded")
	}
}
