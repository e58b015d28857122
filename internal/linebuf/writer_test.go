package linebuf

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc   string
		writes []string
		lines  []string // lines seen before done
		tail   []string // lines emitted by done
	}{
		{desc: "nothing written"},
		{
			desc:   "blank writes",
			writes: []string{"", ""},
		},
		{
			desc:   "unterminated",
			writes: []string{"<div", ` class="sourceCode">`},
			tail:   []string{`<div class="sourceCode">`},
		},
		{
			desc:   "several lines in one write",
			writes: []string{"a\nb\n\nc"},
			lines:  []string{"a\n", "b\n", "\n"},
			tail:   []string{"c"},
		},
		{
			desc:   "line split across writes",
			writes: []string{"lineh", "l: 3", " blocks\n"},
			lines:  []string{"linehl: 3 blocks\n"},
		},
		{
			desc:   "newline only",
			writes: []string{"\n", "\n"},
			lines:  []string{"\n", "\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var got []string
			w, done := Writer(func(line []byte) {
				got = append(got, string(line))
			})

			for _, s := range tt.writes {
				n, err := io.WriteString(w, s)
				require.NoError(t, err)
				assert.Equal(t, len(s), n)
			}
			assert.Equal(t, tt.lines, got, "before done")

			done()
			assert.Equal(t, append(tt.lines, tt.tail...), got, "after done")
		})
	}
}

func TestWriter_pendingReset(t *testing.T) {
	t.Parallel()

	w, _ := Writer(func([]byte) {})
	lw := w.(*lineWriter)

	_, err := io.WriteString(w, "partial")
	require.NoError(t, err)
	assert.Equal(t, "partial", string(lw.pending))

	_, err = io.WriteString(w, " line\n")
	require.NoError(t, err)
	assert.Nil(t, lw.pending, "pending should be released after a full line")
}

func TestWriter_doneTwice(t *testing.T) {
	t.Parallel()

	var got []string
	w, done := Writer(func(line []byte) {
		got = append(got, string(line))
	})

	_, err := io.WriteString(w, "tail")
	require.NoError(t, err)
	done()
	done()

	assert.Equal(t, []string{"tail"}, got)
}

// Write and done run from many goroutines at once.
// Every byte must come out exactly once,
// and 'go test -race' guards the callback.
func TestWriter_concurrent(t *testing.T) {
	t.Parallel()

	const N = 50

	var got strings.Builder
	w, done := Writer(func(line []byte) {
		got.Write(line)
	})

	var wg sync.WaitGroup
	wg.Add(2 * N)
	for i := range N {
		go func() {
			defer wg.Done()
			_, err := fmt.Fprintf(w, "block %d\n", i)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			done()
		}()
	}
	wg.Wait()
	done()

	var want int
	out := got.String()
	for i := range N {
		line := fmt.Sprintf("block %d\n", i)
		assert.Contains(t, out, line)
		want += len(line)
	}
	assert.Len(t, out, want)
}
