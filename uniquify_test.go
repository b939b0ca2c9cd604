package uniquify

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeInput(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// splitRecords implements the reference counting policy from spec.md §8:
// every inter-newline span is a record, including zero-length ones caused
// by consecutive newlines, and an implicit trailing empty record after a
// final 0x0A is ignored.
func splitRecords(s string) []string {
	if s == "" {
		return nil
	}
	trimmed := strings.HasSuffix(s, "\n")
	parts := strings.Split(s, "\n")
	if trimmed {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func TestBoundaryScenarios(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single newline", "\n", 1},
		{"five newlines", "\n\n\n\n\n", 1},
		{"mixed records", "a\na\nb\nbc\nc\nd\nd\n", 5},
		{"empty records interleaved", "a\n\n\na\n\nb\nb\n\n", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeInput(t, tc.input)
			var out bytes.Buffer
			count, err := uniquifyTo(path, 4, &out)
			if err != nil {
				t.Fatalf("uniquifyTo: %v", err)
			}
			if int(count) != tc.want {
				t.Fatalf("count = %d, want %d", count, tc.want)
			}
		})
	}
}

func TestOutputSetEqualsInputSet(t *testing.T) {
	input := "alpha\nbeta\nalpha\ngamma\nbeta\ndelta\nalpha\n"
	path := writeInput(t, input)

	var out bytes.Buffer
	if _, err := uniquifyTo(path, 3, &out); err != nil {
		t.Fatalf("uniquifyTo: %v", err)
	}

	wantSet := toSet(splitRecords(input))
	gotSet := toSet(splitRecords(out.String()))
	assertSetsEqual(t, gotSet, wantSet)
}

func TestOutputHasNoDuplicates(t *testing.T) {
	input := strings.Repeat("repeat\n", 50) + "once\n"
	path := writeInput(t, input)

	var out bytes.Buffer
	if _, err := uniquifyTo(path, 5, &out); err != nil {
		t.Fatalf("uniquifyTo: %v", err)
	}

	seen := map[string]bool{}
	for _, r := range splitRecords(out.String()) {
		if seen[r] {
			t.Fatalf("record %q appears twice in output", r)
		}
		seen[r] = true
	}
}

func TestWorkerCountInvariance(t *testing.T) {
	var b strings.Builder
	rnd := rand.New(rand.NewSource(1))
	universe := make([]string, 200)
	for i := range universe {
		universe[i] = fmt.Sprintf("rec-%d", i)
	}
	for i := 0; i < 5000; i++ {
		b.WriteString(universe[rnd.Intn(len(universe))])
		b.WriteByte('\n')
	}
	path := writeInput(t, b.String())

	var referenceCount uint32
	var referenceSet map[string]bool
	for _, workers := range []int{1, 2, 3, 4, 8, 16} {
		var out bytes.Buffer
		count, err := uniquifyTo(path, workers, &out)
		if err != nil {
			t.Fatalf("workers=%d: uniquifyTo: %v", workers, err)
		}
		set := toSet(splitRecords(out.String()))
		if referenceSet == nil {
			referenceCount = count
			referenceSet = set
			continue
		}
		if count != referenceCount {
			t.Fatalf("workers=%d: count = %d, want %d (from workers=1)", workers, count, referenceCount)
		}
		assertSetsEqual(t, set, referenceSet)
	}
}

func TestIdempotence(t *testing.T) {
	input := "x\ny\nx\nz\ny\nz\nz\n"
	path := writeInput(t, input)

	var firstPass bytes.Buffer
	if _, err := uniquifyTo(path, 4, &firstPass); err != nil {
		t.Fatalf("first pass: %v", err)
	}

	secondPath := writeInput(t, firstPass.String())
	var secondPass bytes.Buffer
	if _, err := uniquifyTo(secondPath, 4, &secondPass); err != nil {
		t.Fatalf("second pass: %v", err)
	}

	firstSet := toSet(splitRecords(firstPass.String()))
	secondSet := toSet(splitRecords(secondPass.String()))
	assertSetsEqual(t, secondSet, firstSet)
}

func TestMissingFileReturnsError(t *testing.T) {
	var out bytes.Buffer
	_, err := uniquifyTo(filepath.Join(t.TempDir(), "missing"), 2, &out)
	if err == nil {
		t.Fatalf("expected an error for a missing input file")
	}
}

func TestWorkerCountLessThanOneTreatedAsOne(t *testing.T) {
	path := writeInput(t, "a\nb\na\n")
	var out bytes.Buffer
	count, err := uniquifyTo(path, 0, &out)
	if err != nil {
		t.Fatalf("uniquifyTo: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func toSet(records []string) map[string]bool {
	set := make(map[string]bool, len(records))
	for _, r := range records {
		set[r] = true
	}
	return set
}

func assertSetsEqual(t *testing.T, got, want map[string]bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("set size mismatch: got %d, want %d (got=%v want=%v)", len(got), len(want), sortedKeys(got), sortedKeys(want))
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("missing record %q in output set", k)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
