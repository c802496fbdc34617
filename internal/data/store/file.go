package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/util"
)

const fileName = "store.json"

// Document is the single persisted key-value document. It mirrors the four
// storage keys: activities, dailySummaries, autoRefresh and userName.
type Document struct {
	Activities     []activity.Activity     `json:"activities"`
	DailySummaries []activity.DailySummary `json:"dailySummaries"`
	AutoRefresh    *bool                   `json:"autoRefresh,omitempty"`
	UserName       string                  `json:"userName,omitempty"`
}

// AutoRefreshEnabled resolves the persisted flag, defaulting to on
func (d Document) AutoRefreshEnabled() bool {
	if d.AutoRefresh == nil {
		return true
	}
	return *d.AutoRefresh
}

// DisplayName resolves the persisted user name, defaulting to "User"
func (d Document) DisplayName() string {
	if d.UserName == "" {
		return "User"
	}
	return d.UserName
}

// SummaryFor looks up the cached summary for a "YYYY-MM-DD" date key
func (d Document) SummaryFor(dateKey string) (activity.Summary, bool) {
	for _, ds := range d.DailySummaries {
		if ds.Date == dateKey {
			return ds.Summary, true
		}
	}
	return activity.Summary{}, false
}

// PutSummary stores a summary under a date key, replacing any prior entry
func (d *Document) PutSummary(dateKey string, summary activity.Summary) {
	for i, ds := range d.DailySummaries {
		if ds.Date == dateKey {
			d.DailySummaries[i].Summary = summary
			return
		}
	}
	d.DailySummaries = append(d.DailySummaries, activity.DailySummary{Date: dateKey, Summary: summary})
}

// FileStore persists the document as one JSON file under the data directory
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the data directory if needed and returns the store
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, fileName)}, nil
}

// Path returns the location of the persisted document
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the persisted document. A missing or malformed file degrades to
// an empty document with a warning; loading never fails the caller.
func (fs *FileStore) Load() Document {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			util.LogWarnf("Failed to read %s: %v, starting empty", fs.path, err)
		}
		return Document{}
	}

	var doc Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		util.LogWarnf("Failed to parse %s: %v, starting empty", fs.path, err)
		return Document{}
	}

	return doc
}

// Save rewrites the whole document atomically via a temp file and rename
func (fs *FileStore) Save(doc Document) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write store document: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace store document: %w", err)
	}

	return nil
}
