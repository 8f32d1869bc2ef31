package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/gpt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreAt(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)
	return s
}

func TestStore_EmptyMetadata(t *testing.T) {
	s := newTestStore(t)
	meta, err := s.LoadMetadata()
	require.NoError(t, err)
	assert.Empty(t, meta.List)
}

func TestStore_SaveTranscriptRoundTrip(t *testing.T) {
	s := newTestStore(t)
	item := NewItem("greetings")
	transcript := Transcript{History: []gpt.Message{
		gpt.UserMessage("hello"),
		gpt.AssistantMessage("hi there"),
	}}

	require.NoError(t, s.SaveTranscript(item, transcript))

	loaded, err := s.LoadTranscript(item.ID)
	require.NoError(t, err)
	assert.Equal(t, transcript, loaded)

	meta, err := s.LoadMetadata()
	require.NoError(t, err)
	require.Len(t, meta.List, 1)
	assert.Equal(t, item.ID, meta.List[0].ID)
	assert.Equal(t, "greetings", meta.List[0].Title)
}

func TestStore_SaveMovesConversationToFront(t *testing.T) {
	s := newTestStore(t)
	first := NewItem("first")
	second := NewItem("second")
	transcript := Transcript{History: []gpt.Message{gpt.UserMessage("x")}}

	require.NoError(t, s.SaveTranscript(first, transcript))
	require.NoError(t, s.SaveTranscript(second, transcript))
	require.NoError(t, s.SaveTranscript(first, transcript))

	meta, err := s.LoadMetadata()
	require.NoError(t, err)
	require.Len(t, meta.List, 2)
	assert.Equal(t, first.ID, meta.List[0].ID)
	assert.Equal(t, second.ID, meta.List[1].ID)
}

func TestStore_SaveMetadataPrunesMissingTranscripts(t *testing.T) {
	s := newTestStore(t)
	kept := NewItem("kept")
	orphan := NewItem("orphan")
	transcript := Transcript{History: []gpt.Message{gpt.UserMessage("x")}}

	require.NoError(t, s.SaveTranscript(kept, transcript))
	require.NoError(t, s.SaveMetadata(Metadata{List: []Item{kept, orphan}}))

	meta, err := s.LoadMetadata()
	require.NoError(t, err)
	require.Len(t, meta.List, 1)
	assert.Equal(t, kept.ID, meta.List[0].ID)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	item := NewItem("doomed")
	require.NoError(t, s.SaveTranscript(item, Transcript{History: []gpt.Message{gpt.UserMessage("x")}}))

	require.NoError(t, s.Delete(item.ID))

	_, err := s.LoadTranscript(item.ID)
	assert.Error(t, err)
	meta, err := s.LoadMetadata()
	require.NoError(t, err)
	assert.Empty(t, meta.List)
}

func TestStore_LoadTranscriptMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadTranscript(uuid.New())
	assert.Error(t, err)
}

func TestStore_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	item := NewItem("clean")
	require.NoError(t, s.SaveTranscript(item, Transcript{History: []gpt.Message{gpt.UserMessage("x")}}))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestItem_NeedsTitleRefresh(t *testing.T) {
	item := Item{}
	assert.False(t, item.NeedsTitleRefresh(3), "short conversations keep their title")
	assert.True(t, item.NeedsTitleRefresh(5), "never-titled conversations refresh once substantial")

	item.TitleUpdatedAt = 5
	assert.False(t, item.NeedsTitleRefresh(9))
	assert.True(t, item.NeedsTitleRefresh(15))
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "New conversation", TitleFor("   \n"))
	assert.Equal(t, "hello", TitleFor("hello\nsecond line ignored"))

	long := TitleFor("a question that is much longer than the sidebar can possibly show at once")
	assert.LessOrEqual(t, len([]rune(long)), 33)
	assert.Contains(t, long, "…")
}
