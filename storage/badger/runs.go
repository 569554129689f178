// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/embedeval/core"
	"github.com/poiesic/embedeval/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository over an open backend.
func NewRunRepository(backend *Backend) storage.RunRepository {
	return &RunRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *RunRepository) Close() error {
	return nil
}

// SaveRun stores a run record keyed by its name, overwriting any
// previous run with the same name.
func (r *RunRepository) SaveRun(ctx context.Context, record *core.RunRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	value, err := storage.MarshalRunRecord(record)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRunKey(record.Name), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a run by name.
func (r *RunRepository) GetRun(ctx context.Context, name string) (*core.RunRecord, error) {
	if name == "" {
		return nil, core.ErrEmptyRunName
	}

	var record *core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalRunRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRuns retrieves all stored runs. Key order is lexicographic, so
// results come back sorted by run name.
func (r *RunRepository) ListRuns(ctx context.Context) ([]*core.RunRecord, error) {
	var records []*core.RunRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalRunRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRun removes a run by name.
func (r *RunRepository) DeleteRun(ctx context.Context, name string) error {
	if name == "" {
		return core.ErrEmptyRunName
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(name)
		if _, err := tx.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		} else if err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
