package main

import (
	"flag"
	"fmt"

	"github.com/Klingon-tech/kardano/internal/book"
	"github.com/Klingon-tech/kardano/internal/log"
	"github.com/Klingon-tech/kardano/internal/storage"
)

// openBook opens the address book database. The returned func closes it.
func (a *app) openBook() (*book.Book, func()) {
	if !a.cfg.Book.Enabled {
		fatal("address book is disabled (book.enabled = false)")
	}
	db, err := storage.NewBadger(a.cfg.BookDir(), storage.BadgerOptions{Logger: &log.Storage})
	if err != nil {
		fatal("open address book: %v", err)
	}
	return book.New(db, a.network), func() {
		if err := db.Close(); err != nil {
			log.Storage.Warn().Err(err).Msg("Close address book")
		}
	}
}

func (a *app) cmdBook(args []string) {
	if len(args) < 1 {
		fatal("Usage: kardano-cli book <add|list|show|delete> [flags]")
	}
	b, closeBook := a.openBook()
	defer closeBook()

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("book add", flag.ExitOnError)
		name := fs.String("name", "", "Entry name")
		address := fs.String("address", "", "Enterprise (payment) address")
		base := fs.String("base", "", "Base address")
		note := fs.String("note", "", "Free-form note")
		fs.Parse(args[1:])
		if *name == "" || *address == "" {
			closeBook()
			fatal("Usage: kardano-cli book add --name <n> --address <addr> [--base <addr>] [--note text]")
		}
		if err := b.Add(book.Entry{Name: *name, Enterprise: *address, Base: *base, Note: *note}); err != nil {
			closeBook()
			fatal("%v", err)
		}
		fmt.Printf("Added %s\n", *name)

	case "list":
		entries, err := b.List()
		if err != nil {
			closeBook()
			fatal("%v", err)
		}
		if len(entries) == 0 {
			fmt.Println("Address book is empty.")
			return
		}
		for _, e := range entries {
			fmt.Printf("  %-20s %s\n", e.Name, e.Enterprise)
		}

	case "show":
		if len(args) != 2 {
			closeBook()
			fatal("Usage: kardano-cli book show <name>")
		}
		e, err := b.Entry(args[1])
		if err != nil {
			closeBook()
			fatal("%v", err)
		}
		acct, err := b.Get(args[1])
		if err != nil {
			closeBook()
			fatal("%v", err)
		}
		addr, _ := acct.Address()
		fmt.Printf("Name:         %s\n", e.Name)
		fmt.Printf("Address:      %s\n", addr)
		if base, err := acct.BaseAddress(); err == nil {
			fmt.Printf("Base address: %s\n", base)
		}
		if e.Note != "" {
			fmt.Printf("Note:         %s\n", e.Note)
		}
		fmt.Printf("Added:        %s\n", e.AddedAt.Format("2006-01-02 15:04:05"))

	case "delete":
		if len(args) != 2 {
			closeBook()
			fatal("Usage: kardano-cli book delete <name>")
		}
		if err := b.Delete(args[1]); err != nil {
			closeBook()
			fatal("%v", err)
		}
		fmt.Printf("Deleted %s\n", args[1])

	default:
		closeBook()
		fatal("Unknown book command: %s", args[0])
	}
}
