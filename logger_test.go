package texconv_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/synth"
)

// captureLogs installs a text logger at level writing into the returned
// buffer and restores the previous logger when the test ends.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := texconv.Logger()
	t.Cleanup(func() { texconv.SetLogger(orig) })

	var buf bytes.Buffer
	texconv.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func testMaps(t *testing.T) synth.Maps {
	t.Helper()
	d, err := texconv.NewFilled(4, 4, 0.5, 0.4, 0.3, 1)
	if err != nil {
		t.Fatal(err)
	}
	n, err := texconv.NewFilled(4, 4, 0.5, 0.5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return synth.Maps{"d": d, "n": n}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := texconv.Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := texconv.Logger()
	t.Cleanup(func() { texconv.SetLogger(orig) })

	texconv.SetLogger(slog.Default())
	texconv.SetLogger(nil)

	l := texconv.Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set a silent logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestBatchLogsFailures(t *testing.T) {
	logs := captureLogs(t, slog.LevelInfo)

	items := []synth.Item{
		synth.NewItem("crate", "d", "n"),
		synth.NewItem("barrel", "d", "missing"),
	}
	br := synth.Batch(context.Background(), synth.ModePBR, items, testMaps(t), synth.BatchOptions{Workers: 2})
	if len(br.Failed) != 1 {
		t.Fatalf("Failed = %v, want one item", br.Failed)
	}

	out := logs.String()
	if !strings.Contains(out, `level=WARN msg="conversion failed" item=barrel`) {
		t.Errorf("missing warning for barrel:\n%s", out)
	}
	if strings.Contains(out, "item=crate") {
		t.Errorf("successful item logged at Info or above:\n%s", out)
	}
	if !strings.Contains(out, `level=INFO msg="Converted 1/2 items"`) {
		t.Errorf("missing batch summary:\n%s", out)
	}
	if strings.Contains(out, "level=DEBUG") {
		t.Errorf("debug records written at Info level:\n%s", out)
	}
}

func TestConvertLogsStagesAtDebug(t *testing.T) {
	logs := captureLogs(t, slog.LevelDebug)

	if _, err := synth.Convert(synth.ModePBR, synth.NewItem("crate", "d", "n"), testMaps(t)); err != nil {
		t.Fatal(err)
	}
	out := logs.String()
	if !strings.Contains(out, `msg="resolving maps" item=crate`) {
		t.Errorf("missing stage record:\n%s", out)
	}
	if !strings.Contains(out, "width=4 height=4") {
		t.Errorf("stage record lacks the working resolution:\n%s", out)
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := texconv.Logger()
	t.Cleanup(func() { texconv.SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l := texconv.Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
				return
			}
			l.Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			texconv.SetLogger(slog.Default())
			texconv.SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := texconv.Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
