package book

import (
	"errors"
	"testing"
	"time"

	"github.com/Klingon-tech/kardano/internal/storage"
	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/types"
)

func addrs(t *testing.T, net types.Network, seed byte) (enterprise, base string) {
	t.Helper()
	var pay, stake types.KeyHash
	for i := range pay {
		pay[i] = seed + byte(i)
		stake[i] = ^pay[i]
	}
	var err error
	enterprise, err = codec.BytesToBech32WithHRP(net.AddressHRP(), types.EnterpriseAddressBytes(net.NetworkID, pay))
	if err != nil {
		t.Fatal(err)
	}
	base, err = codec.BytesToBech32WithHRP(net.AddressHRP(), types.BaseAddressBytes(net.NetworkID, pay, stake))
	if err != nil {
		t.Fatal(err)
	}
	return enterprise, base
}

func TestBook_AddGet(t *testing.T) {
	net := types.Mainnet()
	b := New(storage.NewMemory(), net)
	ent, base := addrs(t, net, 1)

	if err := b.Add(Entry{Name: "alice", Enterprise: ent, Base: base, Note: "rent"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	acct, err := b.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !acct.IsReadOnly() {
		t.Error("book account should be read-only")
	}
	if got, _ := acct.Address(); got != ent {
		t.Errorf("Address = %s, want %s", got, ent)
	}
	if got, _ := acct.BaseAddress(); got != base {
		t.Errorf("BaseAddress = %s, want %s", got, base)
	}
	if _, err := acct.Sign("00"); !errors.Is(err, account.ErrUnsupportedOperation) {
		t.Errorf("Sign on book account: err = %v", err)
	}

	e, err := b.Entry("alice")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Note != "rent" || e.AddedAt.IsZero() {
		t.Errorf("Entry = %+v", e)
	}
}

func TestBook_AddDuplicate(t *testing.T) {
	net := types.Mainnet()
	b := New(storage.NewMemory(), net)
	ent, _ := addrs(t, net, 1)
	if err := b.Add(Entry{Name: "bob", Enterprise: ent}); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(Entry{Name: "bob", Enterprise: ent}); !errors.Is(err, ErrExists) {
		t.Errorf("second Add: err = %v, want ErrExists", err)
	}

	other, _ := addrs(t, net, 9)
	if err := b.Put(Entry{Name: "bob", Enterprise: other}); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	e, _ := b.Entry("bob")
	if e.Enterprise != other {
		t.Errorf("Put did not replace entry")
	}
}

func TestBook_PutRejects(t *testing.T) {
	main := types.Mainnet()
	b := New(storage.NewMemory(), main)
	ent, base := addrs(t, main, 1)
	testEnt, _ := addrs(t, types.Preprod(), 1)

	tests := []struct {
		name string
		e    Entry
		want error
	}{
		{"empty name", Entry{Enterprise: ent}, ErrInvalidName},
		{"slash in name", Entry{Name: "a/b", Enterprise: ent}, ErrInvalidName},
		{"padded name", Entry{Name: " a", Enterprise: ent}, ErrInvalidName},
		{"control char", Entry{Name: "a\nb", Enterprise: ent}, ErrInvalidName},
		{"no enterprise", Entry{Name: "x", Base: base}, account.ErrInvalidInput},
		{"garbage address", Entry{Name: "x", Enterprise: "addr1notanaddress"}, account.ErrAddress},
		{"wrong network", Entry{Name: "x", Enterprise: testEnt}, account.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Put(tt.e); !errors.Is(err, tt.want) {
				t.Errorf("Put: err = %v, want %v", err, tt.want)
			}
		})
	}

	list, _ := b.List()
	if len(list) != 0 {
		t.Errorf("rejected entries were stored: %+v", list)
	}
}

func TestBook_ListSortedAndScopedToNetwork(t *testing.T) {
	db := storage.NewMemory()
	mainBook := New(db, types.Mainnet())
	preprod := New(db, types.Preprod())

	for i, name := range []string{"carol", "alice", "bob"} {
		ent, _ := addrs(t, types.Mainnet(), byte(i))
		if err := mainBook.Add(Entry{Name: name, Enterprise: ent}); err != nil {
			t.Fatal(err)
		}
	}
	ent, _ := addrs(t, types.Preprod(), 7)
	if err := preprod.Add(Entry{Name: "alice", Enterprise: ent}); err != nil {
		t.Fatal(err)
	}

	list, err := mainBook.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, e := range list {
		names = append(names, e.Name)
	}
	if len(names) != 3 || names[0] != "alice" || names[1] != "bob" || names[2] != "carol" {
		t.Errorf("List names = %v", names)
	}

	pl, _ := preprod.List()
	if len(pl) != 1 || pl[0].Enterprise != ent {
		t.Errorf("preprod List = %+v", pl)
	}
}

func TestBook_Delete(t *testing.T) {
	net := types.Mainnet()
	b := New(storage.NewMemory(), net)
	ent, _ := addrs(t, net, 1)
	b.Add(Entry{Name: "dave", Enterprise: ent})

	if err := b.Delete("dave"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := b.Get("dave"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: err = %v", err)
	}
	if err := b.Delete("dave"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: err = %v", err)
	}
}

func TestBook_Clear(t *testing.T) {
	db := storage.NewMemory()
	b := New(db, types.Mainnet())
	other := New(db, types.Preview())
	ent, _ := addrs(t, types.Mainnet(), 1)
	pent, _ := addrs(t, types.Preview(), 1)
	b.Add(Entry{Name: "a", Enterprise: ent})
	b.Add(Entry{Name: "b", Enterprise: ent})
	other.Add(Entry{Name: "a", Enterprise: pent})

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if list, _ := b.List(); len(list) != 0 {
		t.Errorf("entries left: %+v", list)
	}
	if list, _ := other.List(); len(list) != 1 {
		t.Errorf("Clear touched another network: %+v", list)
	}
}

func TestBook_Resolve(t *testing.T) {
	net := types.Mainnet()
	b := New(storage.NewMemory(), net)
	ent, _ := addrs(t, net, 1)
	lit, _ := addrs(t, net, 2)
	b.Add(Entry{Name: "erin", Enterprise: ent})

	if got, err := b.Resolve("erin"); err != nil || got != ent {
		t.Errorf("Resolve(name) = %s, %v", got, err)
	}
	if got, err := b.Resolve(lit); err != nil || got != lit {
		t.Errorf("Resolve(address) = %s, %v", got, err)
	}
	if _, err := b.Resolve("nobody"); err == nil {
		t.Error("Resolve(unknown) should fail")
	}
}

func TestBook_PersistsInBadger(t *testing.T) {
	dir := t.TempDir()
	net := types.Preprod()
	ent, base := addrs(t, net, 3)
	added := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	db, err := storage.NewBadger(dir, storage.BadgerOptions{})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	if err := New(db, net).Add(Entry{Name: "frank", Enterprise: ent, Base: base, AddedAt: added}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = storage.NewBadger(dir, storage.BadgerOptions{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	e, err := New(db, net).Entry("frank")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Base != base || !e.AddedAt.Equal(added) {
		t.Errorf("Entry after reopen = %+v", e)
	}
}
