package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/corpo/economy"
)

// Fields reads and writes the simulation state on top of a Store, one key
// per field. Values are JSON encoded.
type Fields struct {
	kv  Store
	log *slog.Logger
}

// NewFields wraps kv. A nil logger means slog.Default().
func NewFields(kv Store, log *slog.Logger) *Fields {
	if log == nil {
		log = slog.Default()
	}
	return &Fields{kv: kv, log: log}
}

// LoadState reads every field independently. A missing, unreadable or
// corrupt field falls back to its zero value; LoadState never fails.
func (f *Fields) LoadState(ctx context.Context) economy.State {
	var s economy.State
	s.WorkBuffer = f.loadNonNegative(ctx, KeyWorkBuffer)
	s.Money = f.loadNumber(ctx, KeyMoney)
	s.AdminFees = f.loadNonNegative(ctx, KeyAdminFees)
	s.Workers = f.loadWorkers(ctx)
	return s
}

func (f *Fields) SaveWorkBuffer(ctx context.Context, v float64) error {
	return f.saveJSON(ctx, KeyWorkBuffer, v)
}

func (f *Fields) SaveMoney(ctx context.Context, v float64) error {
	return f.saveJSON(ctx, KeyMoney, v)
}

func (f *Fields) SaveAdminFees(ctx context.Context, v float64) error {
	return f.saveJSON(ctx, KeyAdminFees, v)
}

// SaveWorkers writes the full registry. An empty registry is written as [].
func (f *Fields) SaveWorkers(ctx context.Context, workers []economy.Worker) error {
	if workers == nil {
		workers = []economy.Worker{}
	}
	return f.saveJSON(ctx, KeyWorkers, workers)
}

// Close closes the underlying store.
func (f *Fields) Close() error {
	return f.kv.Close()
}

func (f *Fields) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := f.kv.Save(ctx, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// load returns the raw value or nil when the key is absent or unreadable.
func (f *Fields) load(ctx context.Context, key string) []byte {
	data, ok, err := f.kv.Load(ctx, key)
	if err != nil {
		f.log.Warn("state field unreadable, using default", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return data
}

func (f *Fields) loadNumber(ctx context.Context, key string) float64 {
	data := f.load(ctx, key)
	if data == nil {
		return 0
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		f.log.Warn("state field corrupt, using default", "key", key, "raw", string(data))
		return 0
	}
	return v
}

func (f *Fields) loadNonNegative(ctx context.Context, key string) float64 {
	v := f.loadNumber(ctx, key)
	if v < 0 {
		f.log.Warn("state field negative, using default", "key", key, "value", v)
		return 0
	}
	return v
}

func (f *Fields) loadWorkers(ctx context.Context) []economy.Worker {
	data := f.load(ctx, KeyWorkers)
	if data == nil {
		return []economy.Worker{}
	}
	var workers []economy.Worker
	if err := json.Unmarshal(data, &workers); err != nil {
		f.log.Warn("state field corrupt, using default", "key", KeyWorkers, "error", err)
		return []economy.Worker{}
	}
	if err := validateWorkers(workers); err != nil {
		f.log.Warn("state field corrupt, using default", "key", KeyWorkers, "error", err)
		return []economy.Worker{}
	}
	if workers == nil {
		workers = []economy.Worker{}
	}
	return workers
}

func validateWorkers(workers []economy.Worker) error {
	seen := make(map[int64]bool, len(workers))
	for _, w := range workers {
		if seen[w.ID] {
			return fmt.Errorf("duplicate worker id %d", w.ID)
		}
		seen[w.ID] = true
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}
