// Package ledger keeps the flat transaction list and persists it to the
// durable store after every mutation. All reward figures are derived from
// it on demand and never stored.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adityakr/cctracker/internal/catalog"
	"github.com/adityakr/cctracker/internal/storage"
	"github.com/sirupsen/logrus"
)

// storeKey is the single key the serialized transaction list lives under.
const storeKey = "transactions"

// Transaction is one card spend. Immutable once created; removable by ID.
type Transaction struct {
	ID       int64        `json:"id"`
	Card     catalog.Card `json:"card"`
	Category string       `json:"category"`
	Amount   float64      `json:"amount"`
	Date     time.Time    `json:"date"`
}

// Book is the persistent ledger. It is not safe for concurrent use; the
// tool is single-user and synchronous.
type Book struct {
	store *storage.Store
	log   *logrus.Logger
	txns  []Transaction
}

// Load reads the ledger from the store. A missing key yields an empty
// book; malformed stored content fails closed to an empty book instead of
// propagating a parse error.
func Load(store *storage.Store, log *logrus.Logger) (*Book, error) {
	b := &Book{store: store, log: log}
	raw, ok, err := store.Get(storeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if !ok {
		return b, nil
	}
	if err := json.Unmarshal(raw, &b.txns); err != nil {
		log.WithError(err).Warn("stored ledger is unreadable, starting empty")
		b.txns = nil
	}
	return b, nil
}

// Add appends a transaction, assigns its ID and persists before returning.
func (b *Book) Add(card catalog.Card, category string, amount float64, date time.Time) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("amount must be positive, got %v", amount)
	}
	txn := Transaction{
		ID:       b.nextID(),
		Card:     card,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	b.txns = append(b.txns, txn)
	if err := b.persist(); err != nil {
		b.txns = b.txns[:len(b.txns)-1]
		return Transaction{}, err
	}
	return txn, nil
}

// Remove deletes the transaction with the given ID. An unknown ID is a
// no-op, not an error.
func (b *Book) Remove(id int64) error {
	idx := -1
	for i, t := range b.txns {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	b.txns = append(b.txns[:idx], b.txns[idx+1:]...)
	return b.persist()
}

// Clear drops every transaction. Confirmation is the caller's concern;
// once invoked the wipe is unconditional.
func (b *Book) Clear() error {
	b.txns = nil
	return b.persist()
}

// All returns a copy of the transaction list.
func (b *Book) All() []Transaction {
	return append([]Transaction(nil), b.txns...)
}

func (b *Book) Len() int {
	return len(b.txns)
}

// nextID is a unix-milli token, bumped past the newest existing ID so
// that rapid consecutive adds stay unique.
func (b *Book) nextID() int64 {
	id := time.Now().UnixMilli()
	if n := len(b.txns); n > 0 && id <= b.txns[n-1].ID {
		id = b.txns[n-1].ID + 1
	}
	return id
}

func (b *Book) persist() error {
	raw, err := json.Marshal(b.txns)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := b.store.Put(storeKey, raw); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}
	return nil
}
