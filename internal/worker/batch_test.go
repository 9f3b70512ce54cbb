package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Jim-Clarke/readgedcom/internal/model"
)

// fakeParser records the paths it was asked to parse and fails on demand.
type fakeParser struct {
	failOn string
}

func (f *fakeParser) ParseFile(path string) (*model.Report, error) {
	if path == f.failOn {
		return nil, fmt.Errorf("parse %s: boom", path)
	}
	return &model.Report{Source: path}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	b := NewBatchProcessor(&fakeParser{}, 3)
	paths := []string{"a.ged", "b.ged", "c.ged"}

	results := b.ProcessPaths(context.Background(), paths)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	var got []string
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("%s: %v", r.Path, r.Error)
		}
		if r.Report == nil || r.Report.Source != r.Path {
			t.Errorf("result for %s carries report %+v", r.Path, r.Report)
		}
		got = append(got, r.Path)
	}
	sort.Strings(got)
	for i, want := range paths {
		if got[i] != want {
			t.Errorf("paths = %v, want %v", got, paths)
			break
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	b := NewBatchProcessor(&fakeParser{failOn: "bad.ged"}, 2)

	results := b.ProcessPaths(context.Background(), []string{"ok.ged", "bad.ged"})
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			if r.Path != "bad.ged" {
				t.Errorf("wrong file failed: %s", r.Path)
			}
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("got %d failures, want 1", failed)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&fakeParser{}, 2)
	if results := b.ProcessPaths(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results for no paths", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.txt")
	content := "a.ged\n\n# a comment\nb.ged\na.ged\n  c.ged  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		t.Fatalf("ReadPathsFromFile: %v", err)
	}

	want := []string{"a.ged", "b.ged", "c.ged"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected an error for a missing list file")
	}
}

func TestProcessListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.txt")
	if err := os.WriteFile(path, []byte("x.ged\ny.ged\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := NewBatchProcessor(&fakeParser{}, 2)
	results, err := b.ProcessListFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessListFile: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
