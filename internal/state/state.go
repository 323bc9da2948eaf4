// Package state persists the little the bot has to remember between runs:
// the last Telegram update it consumed, which exchange fills already hit the
// ledger, and the chat it last heard from.
package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"fill-ledger-bot/internal/logger"
)

// keptFillIDs bounds the processed-fill list persisted to disk.
const keptFillIDs = 1000

type fileState struct {
	LastUpdateID          int64    `json:"last_update_id"`
	ProcessedUpbitFillIDs []string `json:"processed_upbit_fill_ids"`
	DefaultChatID         int64    `json:"default_chat_id,omitempty"`
}

// Store holds the bot state in memory and writes it back as one JSON file.
// It is not safe for concurrent use; the bot runs a single update loop.
type Store struct {
	path          string
	lastUpdateID  int64
	defaultChatID int64
	seen          map[string]struct{}
}

// Load reads the state file at path. A missing or unreadable file is not an
// error: the bot starts fresh and says so. existed reports whether a state
// file was found at all, readable or not.
func Load(ctx context.Context, path string) (st *Store, existed bool) {
	st = &Store{path: path, seen: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn(ctx, "State file unreadable, starting fresh", "path", path, "error", err)
			return st, true
		}
		return st, false
	}

	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		logger.Warn(ctx, "State file corrupt, starting fresh", "path", path, "error", err)
		return st, true
	}

	st.lastUpdateID = fs.LastUpdateID
	st.defaultChatID = fs.DefaultChatID
	for _, id := range fs.ProcessedUpbitFillIDs {
		st.seen[id] = struct{}{}
	}
	return st, true
}

// Save writes the state file, creating parent directories as needed. The
// processed-fill list is persisted sorted and clipped to the newest ids so
// the file cannot grow without bound.
func (s *Store) Save(ctx context.Context) error {
	ids := make([]string, 0, len(s.seen))
	for id := range s.seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > keptFillIDs {
		dropped := ids[:len(ids)-keptFillIDs]
		ids = ids[len(ids)-keptFillIDs:]
		for _, id := range dropped {
			delete(s.seen, id)
		}
	}

	fs := fileState{
		LastUpdateID:          s.lastUpdateID,
		ProcessedUpbitFillIDs: ids,
		DefaultChatID:         s.defaultChatID,
	}
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	logger.Debug(ctx, "State saved", "path", s.path, "last_update_id", s.lastUpdateID, "fill_ids", len(ids))
	return nil
}

func (s *Store) LastUpdateID() int64 { return s.lastUpdateID }

func (s *Store) SetLastUpdateID(id int64) { s.lastUpdateID = id }

func (s *Store) DefaultChatID() int64 { return s.defaultChatID }

func (s *Store) SetDefaultChatID(id int64) { s.defaultChatID = id }

// HasProcessedFill reports whether a fill id was already applied to the
// ledger (or deliberately skipped) in an earlier sync.
func (s *Store) HasProcessedFill(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// MarkProcessedFill records a fill id as handled. The mark only reaches
// disk on the next Save, so a sync that fails midway replays whole.
func (s *Store) MarkProcessedFill(id string) {
	s.seen[id] = struct{}{}
}
