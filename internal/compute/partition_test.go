package compute

import "testing"

func TestPartition(t *testing.T) {
	for _, n := range []int{1, 2, 5, 100, 101, 1000} {
		for _, workers := range []int{-1, 0, 1, 2, 3, 7, 64, 5000} {
			chunks := Partition(n, workers)

			want := workers
			if want < 1 {
				want = 1
			}
			if want > n {
				want = n
			}
			if len(chunks) != want {
				t.Fatalf("Partition(%d, %d): %d chunks, want %d", n, workers, len(chunks), want)
			}

			next := 0
			for i, c := range chunks {
				if c.Start != next {
					t.Fatalf("Partition(%d, %d): chunk %d starts at %d, want %d", n, workers, i, c.Start, next)
				}
				if c.Len() <= 0 {
					t.Fatalf("Partition(%d, %d): chunk %d is empty", n, workers, i)
				}
				if i < len(chunks)-1 && c.Len() != n/want {
					t.Errorf("Partition(%d, %d): chunk %d has %d indices, want %d", n, workers, i, c.Len(), n/want)
				}
				next = c.End
			}
			if next != n {
				t.Errorf("Partition(%d, %d) covers [0, %d), want [0, %d)", n, workers, next, n)
			}
		}
	}
}

func TestPartition_Empty(t *testing.T) {
	if chunks := Partition(0, 4); len(chunks) != 0 {
		t.Errorf("Partition(0, 4) = %v, want none", chunks)
	}
}

func TestPartition_RemainderInLastChunk(t *testing.T) {
	chunks := Partition(10, 3)
	want := []Chunk{{0, 3}, {3, 6}, {6, 10}}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %v, want %v", i, chunks[i], want[i])
		}
	}
}
