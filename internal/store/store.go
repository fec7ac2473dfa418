// Package store holds the current normalized transaction batch.
//
// The batch is replaced wholesale on each successful parse and never mutated
// in place; every derived view recomputes from the current batch on demand.
// There is no merge, partial update, or cross-session persistence.
package store

import (
	"github.com/zahnno/visualize-txn/internal/models"
	"github.com/zahnno/visualize-txn/pkg/logger"
)

// Store holds the transaction batch for the current upload
type Store struct {
	transactions []*models.Transaction
	logger       logger.Logger
}

// New creates an empty Store
func New() *Store {
	return &Store{
		logger: logger.GetGlobalLogger().WithComponent("store"),
	}
}

// Replace swaps in a new batch, discarding the previous one entirely.
// Replacing with an empty or nil batch is valid and renders nothing
// downstream.
func (s *Store) Replace(transactions []*models.Transaction) {
	s.transactions = transactions
	s.logger.WithField("count", len(transactions)).Debug("Replaced transaction batch")
}

// Transactions returns the current batch in source order
func (s *Store) Transactions() []*models.Transaction {
	return s.transactions
}

// Len returns the number of transactions in the current batch
func (s *Store) Len() int {
	return len(s.transactions)
}

// IsEmpty reports whether the store holds no transactions
func (s *Store) IsEmpty() bool {
	return len(s.transactions) == 0
}
