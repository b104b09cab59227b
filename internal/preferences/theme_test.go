package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boofmebel/boofmebel/internal/domain"
	"github.com/boofmebel/boofmebel/internal/storage"
)

type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenSlot) Set(context.Context, string, []byte) error   { return errors.New("down") }

func TestLoad_DefaultsToLight(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	p := NewThemePreference(store, "", nil)
	p.Load(ctx)
	assert.Equal(t, domain.ThemeLight, p.Theme())

	require.NoError(t, store.Set(ctx, DefaultThemeKey, []byte("purple")))
	p.Load(ctx)
	assert.Equal(t, domain.ThemeLight, p.Theme())
}

func TestToggle_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	p := NewThemePreference(store, DefaultThemeKey, nil)
	p.Load(ctx)

	theme, err := p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	raw, err := store.Get(ctx, DefaultThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", string(raw))

	reloaded := NewThemePreference(store, DefaultThemeKey, nil)
	reloaded.Load(ctx)
	assert.Equal(t, domain.ThemeDark, reloaded.Theme())

	theme, err = p.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
}

func TestToggle_PersistFailureKeepsTheme(t *testing.T) {
	p := NewThemePreference(brokenSlot{}, DefaultThemeKey, nil)
	p.Load(context.Background())

	theme, err := p.Toggle(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.ThemeDark, theme)
	assert.Equal(t, domain.ThemeDark, p.Theme())
}
