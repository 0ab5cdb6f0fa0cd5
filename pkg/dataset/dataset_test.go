package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/storage"
)

// flakySource fails while err is set.
type flakySource struct {
	*storage.MemorySource
	mu  sync.Mutex
	err error
}

func (s *flakySource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *flakySource) Load(ctx context.Context) ([]prospect.Prospect, error) {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, prospect.NewLoadError(s.Name(), err)
	}
	return s.MemorySource.Load(ctx)
}

type reloadRecord struct {
	source string
	count  int
	err    error
}

type recordingObserver struct {
	mu      sync.Mutex
	reloads []reloadRecord
}

func (o *recordingObserver) ObserveReload(source string, _ time.Duration, count int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reloads = append(o.reloads, reloadRecord{source, count, err})
}

func sampleProspects() []prospect.Prospect {
	return []prospect.Prospect{
		{FullName: "A", CompanyName: "Acme", CombinedAcquisitionScore: prospect.Num(80)},
		{FullName: "B", CompanyName: "Bolt", CombinedAcquisitionScore: prospect.Num(55)},
	}
}

func TestDataset_StartsEmpty(t *testing.T) {
	ds := New(storage.NewMemorySource("mem", sampleProspects()))
	defer ds.Close()

	if ds.Loaded() {
		t.Error("Expected new dataset to be unloaded")
	}
	if records := ds.Records(); records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil records, got %#v", records)
	}
	if ds.Snapshot().Source != "mem" {
		t.Errorf("Expected source mem, got %q", ds.Snapshot().Source)
	}
}

func TestDataset_Reload(t *testing.T) {
	obs := &recordingObserver{}
	ds := New(storage.NewMemorySource("mem", sampleProspects()), WithObserver(obs))
	defer ds.Close()

	if err := ds.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	snap := ds.Snapshot()
	if !snap.Loaded() || snap.Version != 1 {
		t.Errorf("Expected loaded version 1, got %+v", snap)
	}
	if len(snap.Records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(snap.Records))
	}
	if snap.LoadedAt.IsZero() {
		t.Error("Expected LoadedAt to be set")
	}

	if err := ds.Reload(context.Background()); err != nil {
		t.Fatalf("second Reload failed: %v", err)
	}
	if ds.Snapshot().Version != 2 {
		t.Errorf("Expected version 2, got %d", ds.Snapshot().Version)
	}
	if len(obs.reloads) != 2 || obs.reloads[0].count != 2 || obs.reloads[0].err != nil {
		t.Errorf("Unexpected observed reloads %+v", obs.reloads)
	}
}

func TestDataset_FailedReloadKeepsPrevious(t *testing.T) {
	src := &flakySource{MemorySource: storage.NewMemorySource("mem", sampleProspects())}
	obs := &recordingObserver{}
	ds := New(src, WithObserver(obs))
	defer ds.Close()

	if err := ds.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	before := ds.Snapshot()

	boom := errors.New("disk on fire")
	src.setErr(boom)

	err := ds.Reload(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped load error, got %v", err)
	}
	var loadErr *prospect.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("Expected LoadError, got %T", err)
	}
	if ds.Snapshot() != before {
		t.Error("Expected previous snapshot to remain published")
	}
	if last := obs.reloads[len(obs.reloads)-1]; last.err == nil {
		t.Error("Expected observer to see the failure")
	}
}

func TestDataset_FailedFirstLoadStaysEmpty(t *testing.T) {
	src := &flakySource{MemorySource: storage.NewMemorySource("mem", nil), err: errors.New("missing")}
	ds := New(src)
	defer ds.Close()

	if err := ds.Reload(context.Background()); err == nil {
		t.Fatal("Expected error")
	}
	if ds.Loaded() || len(ds.Records()) != 0 {
		t.Error("Expected dataset to stay empty")
	}
}

func TestDataset_Close(t *testing.T) {
	ds := New(storage.NewMemorySource("mem", sampleProspects()))
	if err := ds.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := ds.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op, got %v", err)
	}
	if err := ds.Reload(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if len(ds.Records()) != 2 {
		t.Error("Expected last snapshot to remain readable after Close")
	}
}

// gatedSource blocks its first Load until release is closed.
type gatedSource struct {
	*storage.MemorySource
	entered chan struct{}
	release chan struct{}

	mu    sync.Mutex
	loads int
}

func (s *gatedSource) Load(ctx context.Context) ([]prospect.Prospect, error) {
	s.mu.Lock()
	s.loads++
	first := s.loads == 1
	s.mu.Unlock()
	if first {
		close(s.entered)
		<-s.release
	}
	return s.MemorySource.Load(ctx)
}

func TestDataset_ReloadWaitingDuringClose(t *testing.T) {
	src := &gatedSource{
		MemorySource: storage.NewMemorySource("mem", sampleProspects()),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	ds := New(src)

	first := make(chan error, 1)
	go func() { first <- ds.Reload(context.Background()) }()
	<-src.entered

	second := make(chan error, 1)
	go func() { second <- ds.Reload(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	closed := make(chan error, 1)
	go func() { closed <- ds.Close() }()
	deadline := time.Now().Add(time.Second)
	for !ds.closed.Load() {
		if time.Now().After(deadline) {
			t.Fatal("Close did not start")
		}
		time.Sleep(time.Millisecond)
	}
	close(src.release)

	if err := <-first; err != nil {
		t.Errorf("Expected in-flight reload to succeed, got %v", err)
	}
	if err := <-second; !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed for the waiting reload, got %v", err)
	}
	if err := <-closed; err != nil {
		t.Errorf("Close failed: %v", err)
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	if src.loads != 1 {
		t.Errorf("Expected 1 load, got %d", src.loads)
	}
}

func TestDataset_ConcurrentReadsDuringReload(t *testing.T) {
	ds := New(storage.NewMemorySource("mem", sampleProspects()))
	defer ds.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = ds.Reload(context.Background())
		}()
		go func() {
			defer wg.Done()
			n := len(ds.Records())
			if n != 0 && n != 2 {
				t.Errorf("Observed partial record list of size %d", n)
			}
		}()
	}
	wg.Wait()

	if ds.Snapshot().Version != 4 {
		t.Errorf("Expected 4 serialised reloads, got version %d", ds.Snapshot().Version)
	}
}
