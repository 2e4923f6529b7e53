// RCV API - Product Compliance Tracking and Geospatial Analytics
// Copyright 2026 Genrei123
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Genrei123/rcv-api

package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/Genrei123/rcv-api/internal/logging"
	"github.com/Genrei123/rcv-api/internal/models"
)

// reportKeyPrefix namespaces report records in BadgerDB.
const reportKeyPrefix = "report:"

// BadgerOptions configures the BadgerDB-backed store.
type BadgerOptions struct {
	// Path is the on-disk database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the whole database in RAM. Useful for tests.
	InMemory bool

	// SyncWrites fsyncs every write. Slower but durable across power loss.
	SyncWrites bool
}

// BadgerStore is a ReportStore backed by BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	closed atomic.Bool
}

// OpenBadger opens (or creates) the report database.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	badgerOpts.SyncWrites = opts.SyncWrites
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	// Reduce logging verbosity
	badgerOpts.Logger = nil

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Bool("sync_writes", opts.SyncWrites).
		Msg("report store opened")

	return &BadgerStore{db: db}, nil
}

// Put stores a new report.
func (s *BadgerStore) Put(ctx context.Context, report *models.ComplianceReport) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	key := []byte(reportKeyPrefix + report.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicateID
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check report key: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set report: %w", err)
		}
		return nil
	})
}

// Get retrieves one report by ID.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.ComplianceReport, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	var report models.ComplianceReport
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(reportKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &report)
		})
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List returns filtered reports ordered by creation time, then ID.
func (s *BadgerStore) List(ctx context.Context, filter Filter) ([]models.ComplianceReport, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	var reports []models.ComplianceReport
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reportKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var report models.ComplianceReport
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &report)
			})
			if err != nil {
				return fmt.Errorf("unmarshal report: %w", err)
			}
			if filter.matches(&report) {
				reports = append(reports, report)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortReports(reports)
	return paginate(reports, filter), nil
}

// Count returns the number of reports matching the filter.
func (s *BadgerStore) Count(ctx context.Context, filter Filter) (int, error) {
	if s.closed.Load() {
		return 0, ErrStoreClosed
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		// Values are only needed when a predicate inspects the record.
		opts.PrefetchValues = filter != (Filter{})
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(reportKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if !opts.PrefetchValues {
				count++
				continue
			}
			var report models.ComplianceReport
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &report)
			})
			if err != nil {
				return fmt.Errorf("unmarshal report: %w", err)
			}
			if filter.matches(&report) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close flushes and closes the underlying database.
func (s *BadgerStore) Close() error {
	if s.closed.Swap(true) {
		return ErrStoreClosed
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}
