// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// TOKEN PROVIDERS
// =============================================================================

// TokenProvider supplies the bearer token attached to outgoing requests.
// It is an injected capability of the Client: the client never reads token
// storage on its own, which keeps it testable with fake tokens.
//
// An empty return value means "no token"; requests are then sent without an
// Authorization header and the server decides what unauthenticated access
// is allowed to do.
type TokenProvider interface {
	Token() string
}

// StaticToken is a TokenProvider that always returns the same value.
// The zero value provides no token.
type StaticToken string

// Token implements TokenProvider.
func (s StaticToken) Token() string { return string(s) }

// =============================================================================
// FILE TOKEN PROVIDER
// =============================================================================

// FileTokenProvider reads the bearer token from a file under a fixed,
// well-known path. The file is owned by whatever external tool performs
// login; this client only ever reads it.
//
// The provider watches the parent directory so that a login or logout while
// the TUI is running takes effect on the next request without a restart.
type FileTokenProvider struct {
	path string

	mu    sync.RWMutex
	token string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileTokenProvider creates a provider for the given token file and
// performs the initial read. A missing file is not an error; it simply
// yields no token. The directory watch is best-effort: if it cannot be
// established the provider still works, re-reading only at construction.
func NewFileTokenProvider(path string) (*FileTokenProvider, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token path: %w", err)
	}

	p := &FileTokenProvider{
		path: abs,
		done: make(chan struct{}),
	}
	p.reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("token watch unavailable: %v", err)
		return p, nil
	}
	// Watch the directory, not the file: editors and login tools replace
	// the file by rename, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		log.Printf("token watch unavailable: %v", err)
		return p, nil
	}

	p.watcher = watcher
	go p.watch()
	return p, nil
}

// Token implements TokenProvider.
func (p *FileTokenProvider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// Path returns the watched token file path.
func (p *FileTokenProvider) Path() string { return p.path }

// Close stops the directory watch. Safe to call when the watch was never
// established.
func (p *FileTokenProvider) Close() error {
	close(p.done)
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}

// reload re-reads the token file into memory.
func (p *FileTokenProvider) reload() {
	data, err := os.ReadFile(p.path)
	token := ""
	if err == nil {
		token = strings.TrimSpace(string(data))
	} else if !os.IsNotExist(err) {
		log.Printf("token read failed: %v", err)
	}

	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
}

// watch reloads the token whenever the watched file changes.
func (p *FileTokenProvider) watch() {
	for {
		select {
		case <-p.done:
			return
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != p.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				p.reload()
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("token watch error: %v", err)
		}
	}
}
