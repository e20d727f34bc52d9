// Package book keeps named, address-only identities (counterparties,
// watch-only accounts) in a storage.DB, one namespace per network.
package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	klog "github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/storage"
	"github.com/Klingon-tech/kardano/pkg/account"
	"github.com/Klingon-tech/kardano/pkg/codec"
	"github.com/Klingon-tech/kardano/pkg/types"
)

// MaxNameLen bounds entry names.
const MaxNameLen = 64

var entryPrefix = []byte("entry/")

// Book errors.
var (
	ErrNotFound    = errors.New("address book entry not found")
	ErrExists      = errors.New("address book entry already exists")
	ErrInvalidName = errors.New("invalid entry name")
)

// Entry is one stored identity.
type Entry struct {
	Name       string    `json:"name"`
	Enterprise string    `json:"enterprise"`
	Base       string    `json:"base,omitempty"`
	Note       string    `json:"note,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// Book is an address book for a single network.
type Book struct {
	db      *storage.PrefixDB
	network types.Network
}

// New opens the book for network inside db.
func New(db storage.DB, network types.Network) *Book {
	return &Book{
		db:      storage.NewPrefixDB(db, []byte("book/"+network.Name+"/")),
		network: network,
	}
}

// Network returns the network the book is bound to.
func (b *Book) Network() types.Network {
	return b.network
}

// ValidateName checks that name can be used as an entry key.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: length must be 1..%d", ErrInvalidName, MaxNameLen)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrInvalidName)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f || r == '/' {
			return fmt.Errorf("%w: character %q not allowed", ErrInvalidName, r)
		}
	}
	return nil
}

// Add stores a new entry and fails with ErrExists if the name is taken.
func (b *Book) Add(e Entry) error {
	if err := ValidateName(e.Name); err != nil {
		return err
	}
	ok, err := b.db.Has(key(e.Name))
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrExists, e.Name)
	}
	return b.Put(e)
}

// Put stores e, replacing any entry with the same name. Both addresses are
// checked against the book's network before anything is written.
func (b *Book) Put(e Entry) error {
	if err := ValidateName(e.Name); err != nil {
		return err
	}
	if _, err := account.FromKnownAddresses(b.network, e.Base, e.Enterprise); err != nil {
		return err
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := b.db.Put(key(e.Name), data); err != nil {
		return fmt.Errorf("store entry: %w", err)
	}
	klog.Book.Debug().
		Str("network", b.network.Name).
		Str("name", e.Name).
		Str("address", e.Enterprise).
		Msg("Entry stored")
	return nil
}

// Entry returns the stored record for name.
func (b *Book) Entry(name string) (Entry, error) {
	data, err := b.db.Get(key(name))
	if errors.Is(err, storage.ErrNotFound) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", name, err)
	}
	return e, nil
}

// Get returns the read-only account stored under name.
func (b *Book) Get(name string) (*account.Account, error) {
	e, err := b.Entry(name)
	if err != nil {
		return nil, err
	}
	return account.FromKnownAddresses(b.network, e.Base, e.Enterprise)
}

// List returns every entry ordered by name.
func (b *Book) List() ([]Entry, error) {
	var out []Entry
	err := b.db.ForEach(entryPrefix, func(k, v []byte) error {
		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("decode entry %s: %w", k[len(entryPrefix):], err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes name from the book.
func (b *Book) Delete(name string) error {
	ok, err := b.db.Has(key(name))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := b.db.Delete(key(name)); err != nil {
		return err
	}
	klog.Book.Debug().Str("network", b.network.Name).Str("name", name).Msg("Entry deleted")
	return nil
}

// Clear removes every entry for the book's network.
func (b *Book) Clear() error {
	return b.db.DeleteAll()
}

// Resolve maps a book name or a literal address to an address string. Names
// resolve to the entry's enterprise address.
func (b *Book) Resolve(nameOrAddress string) (string, error) {
	if e, err := b.Entry(nameOrAddress); err == nil {
		return e.Enterprise, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if _, err := codec.ToBytes(nameOrAddress); err != nil {
		return "", fmt.Errorf("%q is neither a book entry nor an address: %w", nameOrAddress, err)
	}
	return nameOrAddress, nil
}

func key(name string) []byte {
	return append(append([]byte{}, entryPrefix...), name...)
}
