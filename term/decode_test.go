package term

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PlainRunes(t *testing.T) {
	ev, n := decode([]byte("a"))
	assert.Equal(t, 1, n)
	assert.True(t, ev.IsChar('a'))

	ev, n = decode([]byte("héllo"))
	assert.Equal(t, 1, n)
	assert.Equal(t, 'h', ev.Rune)

	ev, n = decode([]byte("é"))
	assert.Equal(t, 2, n)
	assert.Equal(t, 'é', ev.Rune)
}

func TestDecode_ControlBytes(t *testing.T) {
	ev, _ := decode([]byte{0x03})
	assert.True(t, ev.IsCtrl('c'))

	ev, _ = decode([]byte{'\r'})
	assert.Equal(t, KeyEnter, ev.Key)

	ev, _ = decode([]byte{'\t'})
	assert.Equal(t, KeyTab, ev.Key)

	ev, _ = decode([]byte{0x7f})
	assert.Equal(t, KeyBackspace, ev.Key)
}

func TestDecode_ArrowSequences(t *testing.T) {
	cases := map[string]Key{
		"\x1b[A":  KeyUp,
		"\x1b[B":  KeyDown,
		"\x1b[C":  KeyRight,
		"\x1b[D":  KeyLeft,
		"\x1b[H":  KeyHome,
		"\x1b[F":  KeyEnd,
		"\x1b[3~": KeyDelete,
	}
	for seq, want := range cases {
		ev, n := decode([]byte(seq))
		assert.Equal(t, want, ev.Key, "sequence %q", seq)
		assert.Equal(t, len(seq), n, "sequence %q", seq)
	}
}

func TestDecode_AltRune(t *testing.T) {
	ev, n := decode([]byte("\x1bx"))
	assert.Equal(t, 2, n)
	assert.Equal(t, 'x', ev.Rune)
	assert.True(t, ev.Alt)
}

func TestDecode_BareEscape(t *testing.T) {
	ev, n := decode([]byte{0x1b})
	assert.Equal(t, 1, n)
	assert.Equal(t, KeyEsc, ev.Key)
}

func TestDecode_IncompleteSequenceWaits(t *testing.T) {
	_, n := decode([]byte("\x1b["))
	assert.Equal(t, 0, n)
}

func TestInput_DecodesStream(t *testing.T) {
	in := NewInput(strings.NewReader("ab\x1b[A"))
	defer in.Close()
	ctx := context.Background()

	ev, err := in.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ev.IsChar('a'))

	ev, err = in.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ev.IsChar('b'))

	ev, err = in.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, KeyUp, ev.Key)

	_, err = in.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

// A reader that ends mid-stream leaves decoded keys buffered alongside its
// EOF; every one of them must come out before the error does.
func TestInput_BufferedKeysDrainBeforeEOF(t *testing.T) {
	in := NewInput(strings.NewReader("hello"))
	defer in.Close()
	ctx := context.Background()

	for _, want := range "hello" {
		ev, err := in.Next(ctx)
		require.NoError(t, err)
		assert.True(t, ev.IsChar(want), "expected %q", want)
	}
	_, err := in.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestInput_ContextCancellation(t *testing.T) {
	r, _ := io.Pipe()
	in := NewInput(r)
	defer in.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := in.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScreen_DrawRewritesNewlines(t *testing.T) {
	var sb strings.Builder
	s := NewScreen(&sb)
	s.Draw("one\ntwo")
	assert.Contains(t, sb.String(), "one\r\ntwo")
}
