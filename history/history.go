// Package history persists conversations: a metadata index ordered by
// recency plus one transcript file per conversation id. All writes are
// atomic so a crash mid-save never corrupts existing history.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/seracht/gpterm/config"
	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/log"
)

const (
	metadataFileName = "metadata.json"

	// Titles are refreshed by the model once a conversation is substantial
	// and has grown enough since the last refresh.
	titleMinMessages      = 4
	titleRefreshThreshold = 10

	// fallback titles are clipped to fit the sidebar.
	titleMaxWidth = 32
)

// Item is one conversation in the metadata index.
type Item struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	// TitleUpdatedAt is the transcript length when the title was last
	// generated; zero means never.
	TitleUpdatedAt int `json:"title_updated_at"`
}

// NewItem starts an index entry for a fresh conversation.
func NewItem(title string) Item {
	return Item{ID: uuid.New(), Title: title}
}

// NeedsTitleRefresh reports whether a conversation of msgCount messages is
// due for a model-generated title.
func (i Item) NeedsTitleRefresh(msgCount int) bool {
	if msgCount <= titleMinMessages {
		return false
	}
	return i.TitleUpdatedAt == 0 || msgCount-i.TitleUpdatedAt >= titleRefreshThreshold
}

// Metadata is the index of all conversations, most recent first.
type Metadata struct {
	List []Item `json:"list"`
}

// Upsert moves item to the front of the index, replacing any entry with the
// same id.
func (m *Metadata) Upsert(item Item) {
	kept := m.List[:0]
	for _, e := range m.List {
		if e.ID != item.ID {
			kept = append(kept, e)
		}
	}
	m.List = append([]Item{item}, kept...)
}

// Transcript is the full message history of one conversation.
type Transcript struct {
	History []gpt.Message `json:"history"`
}

// TitleFor derives a fallback title from the first message, clipped to the
// sidebar width by display columns rather than bytes.
func TitleFor(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "New conversation"
	}
	return runewidth.Truncate(line, titleMaxWidth, "…")
}

// Store reads and writes conversation files under one directory.
type Store struct {
	dir string
}

// NewStore opens the history directory inside the app config dir, creating
// it if needed.
func NewStore() (*Store, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(configDir, "history")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// NewStoreAt opens an explicit directory; used by tests.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.dir, metadataFileName)
}

func (s *Store) transcriptPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// LoadMetadata reads the index; a missing file yields an empty index.
func (s *Store) LoadMetadata() (Metadata, error) {
	data, err := os.ReadFile(s.metadataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, nil
		}
		return Metadata{}, fmt.Errorf("failed to read history metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse history metadata: %w", err)
	}
	return meta, nil
}

// SaveMetadata writes the index atomically, pruning entries whose transcript
// file no longer exists.
func (s *Store) SaveMetadata(meta Metadata) error {
	meta = s.prune(meta)
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history metadata: %w", err)
	}
	return s.writeAtomic(s.metadataPath(), data)
}

// prune drops index entries with no transcript on disk.
func (s *Store) prune(meta Metadata) Metadata {
	kept := meta.List[:0]
	for _, item := range meta.List {
		if _, err := os.Stat(s.transcriptPath(item.ID)); err == nil {
			kept = append(kept, item)
		} else {
			log.WarningLog.Printf("dropping conversation %s: transcript missing", item.ID)
		}
	}
	meta.List = kept
	return meta
}

// LoadTranscript reads one conversation's messages.
func (s *Store) LoadTranscript(id uuid.UUID) (Transcript, error) {
	data, err := os.ReadFile(s.transcriptPath(id))
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to read transcript %s: %w", id, err)
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return Transcript{}, fmt.Errorf("failed to parse transcript %s: %w", id, err)
	}
	return t, nil
}

// SaveTranscript writes one conversation atomically and promotes its index
// entry to the front.
func (s *Store) SaveTranscript(item Item, t Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript %s: %w", item.ID, err)
	}
	if err := s.writeAtomic(s.transcriptPath(item.ID), data); err != nil {
		return err
	}

	meta, err := s.LoadMetadata()
	if err != nil {
		log.WarningLog.Printf("rebuilding history metadata: %v", err)
		meta = Metadata{}
	}
	meta.Upsert(item)
	return s.SaveMetadata(meta)
}

// SaveItem updates a conversation's index entry without touching its
// transcript. The entry keeps its position when it already exists.
func (s *Store) SaveItem(item Item) error {
	meta, err := s.LoadMetadata()
	if err != nil {
		return err
	}
	for i := range meta.List {
		if meta.List[i].ID == item.ID {
			meta.List[i] = item
			return s.SaveMetadata(meta)
		}
	}
	meta.Upsert(item)
	return s.SaveMetadata(meta)
}

// FindItem looks a conversation up in the index.
func (s *Store) FindItem(id uuid.UUID) (Item, error) {
	meta, err := s.LoadMetadata()
	if err != nil {
		return Item{}, err
	}
	for _, item := range meta.List {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("conversation %s not found in history", id)
}

// Delete removes a conversation and its index entry.
func (s *Store) Delete(id uuid.UUID) error {
	if err := os.Remove(s.transcriptPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete transcript %s: %w", id, err)
	}
	meta, err := s.LoadMetadata()
	if err != nil {
		return err
	}
	return s.SaveMetadata(meta)
}

// writeAtomic writes via a temp file in the same directory plus rename.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
