package preferences

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/storage"
)

const DefaultThemeKey = "theme"

type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ThemePreference is the persisted light/dark choice
type ThemePreference struct {
	mu    sync.RWMutex
	theme domain.Theme
	slot  Slot
	key   string
	log   *zap.Logger
}

func NewThemePreference(slot Slot, key string, log *zap.Logger) *ThemePreference {
	if key == "" {
		key = DefaultThemeKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ThemePreference{theme: domain.ThemeLight, slot: slot, key: key, log: log}
}

// Load reads the stored theme. Anything other than "dark" means light.
func (p *ThemePreference) Load(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.theme = domain.ThemeLight
	raw, err := p.slot.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.Warn("failed to read theme preference", zap.Error(err))
		}
		return
	}
	if domain.Theme(raw) == domain.ThemeDark {
		p.theme = domain.ThemeDark
	}
}

func (p *ThemePreference) Theme() domain.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Toggle flips the theme and persists it. The new theme applies even when persisting fails.
func (p *ThemePreference) Toggle(ctx context.Context) (domain.Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.theme = p.theme.Toggle()
	if err := p.slot.Set(ctx, p.key, []byte(p.theme)); err != nil {
		p.log.Warn("failed to persist theme preference", zap.Error(err))
		return p.theme, fmt.Errorf("persist theme failed: %w", err)
	}
	return p.theme, nil
}
