package fuzztests

import (
	"bytes"
	"context"
	"testing"

	"sysyc/internal/diagfmt"
	"sysyc/internal/snapshot"
	"sysyc/internal/testkit"
)

func FuzzSnapshotDump(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		u, err := snapshot.Decode(bytes.NewReader(input))
		if err != nil {
			return
		}
		if _, err := testkit.CheckTree(u.Builder, u.Symbols); err != nil {
			t.Fatalf("decoded unit breaks tree invariants: %v", err)
		}

		var first, second bytes.Buffer
		firstErr := diagfmt.FormatUnitTrace(context.Background(), &first, u)
		secondErr := diagfmt.FormatUnitTrace(context.Background(), &second, u)
		if (firstErr == nil) != (secondErr == nil) || first.String() != second.String() {
			t.Fatalf("dump is not repeatable: %v / %v", firstErr, secondErr)
		}
		if firstErr != nil {
			if first.Len() != 0 {
				t.Fatalf("failed dump wrote %d bytes", first.Len())
			}
			return
		}

		var enc bytes.Buffer
		if err := snapshot.Encode(&enc, u); err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		again, err := snapshot.Decode(&enc)
		if err != nil {
			t.Fatalf("re-decode: %v", err)
		}
		var third bytes.Buffer
		if err := diagfmt.FormatUnitTrace(context.Background(), &third, again); err != nil {
			t.Fatalf("dump after round trip: %v", err)
		}
		if third.String() != first.String() {
			t.Fatalf("round trip changed the trace:\n%s\nvs\n%s", first.String(), third.String())
		}
	})
}
