// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// countingService records starts and fails its first failures runs.
type countingService struct {
	name     string
	starts   atomic.Int32
	failures int32
}

func (s *countingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewSupervisorTree(t *testing.T) {
	t.Run("applies defaults for zero config", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("NewSupervisorTree() error = %v", err)
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
		}
		if tree.Root() == nil {
			t.Error("root supervisor should not be nil")
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		tree, err := NewSupervisorTree(nil, TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
		if err != nil {
			t.Fatalf("NewSupervisorTree() error = %v", err)
		}
		if tree.config.FailureThreshold != 2 || tree.config.ShutdownTimeout != time.Second {
			t.Errorf("config = %+v, want threshold 2 and timeout 1s", tree.config)
		}
		if tree.logger == nil {
			t.Error("nil logger should fall back to slog.Default")
		}
	})
}

func TestSupervisorTree_StartsEveryLayer(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})

	data := &countingService{name: "data"}
	authSvc := &countingService{name: "auth"}
	api := &countingService{name: "api"}
	tree.AddDataService(data)
	tree.AddAuthService(authSvc)
	tree.AddAPIService(api)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("ServeBackground() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	for _, svc := range []*countingService{data, authSvc, api} {
		if svc.starts.Load() < 1 {
			t.Errorf("%s service was not started", svc.name)
		}
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failing := &countingService{name: "store-gc", failures: 2}
	stable := &countingService{name: "http-server"}
	tree.AddDataService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- tree.Serve(ctx) }()
	<-errCh

	if got := failing.starts.Load(); got < 3 {
		t.Errorf("failing service starts = %d, want at least 3", got)
	}
	if got := stable.starts.Load(); got != 1 {
		t.Errorf("stable service starts = %d, want 1", got)
	}
}
