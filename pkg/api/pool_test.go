package api

import (
	"context"
	"testing"
	"time"
)

func TestPoolLimitsSlowWorkers(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 2, MaxSlowWorkers: 1})

	if !pool.TryAcquireSlow() {
		t.Fatal("first slow slot should be free")
	}
	if pool.TryAcquireSlow() {
		t.Fatal("second slow acquire should fail")
	}
	pool.ReleaseSlow()
	if !pool.TryAcquireSlow() {
		t.Fatal("released slot should be reusable")
	}
	pool.ReleaseSlow()
}

func TestPoolAcquireRespectsContext(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 1, MaxSlowWorkers: 1})

	if err := pool.AcquireFast(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pool.AcquireFast(ctx); err == nil {
		t.Fatal("acquire on a full pool should fail once the context expires")
	}
	pool.ReleaseFast()
}

func TestPoolStats(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxFastWorkers: 3, MaxSlowWorkers: 2})

	if err := pool.AcquireFast(context.Background()); err != nil {
		t.Fatal(err)
	}
	stats := pool.Stats()
	if stats.ActiveFast != 1 || stats.MaxFast != 3 || stats.MaxSlow != 2 {
		t.Errorf("stats = %+v", stats)
	}

	pool.ReleaseFast()
	stats = pool.Stats()
	if stats.ActiveFast != 0 || stats.TotalFast != 1 {
		t.Errorf("stats after release = %+v", stats)
	}
}

func TestPoolDefaults(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{})
	stats := pool.Stats()
	if stats.MaxFast != 100 || stats.MaxSlow != 4 {
		t.Errorf("defaults = %d/%d, want 100/4", stats.MaxFast, stats.MaxSlow)
	}
}
