package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkarhu/diceware/internal/wordlist"
)

// Manager ties the store and fetcher together behind one lookup call.
//
// It is the "wordlist acquisition" collaborator: the generation core only
// ever sees the validated list it returns.
type Manager struct {
	store   *Store
	fetcher *Fetcher
	logger  *slog.Logger

	// urlFor resolves a language tag to its download URL. Overridable so
	// tests can point the manager at a local server.
	urlFor func(lang string) (string, bool)
}

// NewManager creates a Manager over a store and fetcher.
func NewManager(store *Store, fetcher *Fetcher, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		urlFor:  wordlist.URL,
	}
}

// Get returns the validated word list for a language, downloading and caching
// it on a miss.
//
// A cached body that no longer parses (truncated write, changed format) is
// treated as a miss and refetched rather than trusted. A downloaded body that
// fails validation is returned as an error and never cached.
//
// Parameters:
//   - ctx: context for cancellation and timeout control
//   - lang: the language tag, must be supported
//
// Returns the validated list, or a fatal error: unsupported language, remote
// failure, or malformed list.
func (m *Manager) Get(ctx context.Context, lang string) (wordlist.List, error) {
	url, ok := m.urlFor(lang)
	if !ok {
		return nil, fmt.Errorf("cache: no word list source for language %q", lang)
	}

	if body, hit, err := m.store.Get(ctx, lang); err != nil {
		return nil, err
	} else if hit {
		list, perr := wordlist.Parse(strings.NewReader(body))
		if perr == nil {
			m.logger.Debug("Word list served from cache", "lang", lang)
			return list, nil
		}
		m.logger.Warn("Cached word list is invalid, refetching", "lang", lang, "error", perr)
	}

	body, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	list, err := wordlist.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("word list for language %q from %s: %w", lang, url, err)
	}

	if err := m.store.Put(ctx, lang, url, body); err != nil {
		// The list itself is good; a failed cache write costs a re-download
		// next run, nothing more.
		m.logger.Warn("Failed to cache word list", "lang", lang, "error", err)
	} else {
		m.logger.Debug("Word list downloaded and cached", "lang", lang, "url", url)
	}
	return list, nil
}

// Prefetch warms the cache for every supported language.
//
// Downloads go through the fetcher's politeness limiter, so this deliberately
// takes a couple of seconds per miss.
//
// Returns the first error encountered; languages before it stay cached.
func (m *Manager) Prefetch(ctx context.Context) error {
	for _, lang := range wordlist.Languages() {
		if _, err := m.Get(ctx, lang); err != nil {
			return err
		}
		m.logger.Info("Word list ready", "lang", lang)
	}
	return nil
}
