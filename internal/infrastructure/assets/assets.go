// Package assets resolves sprite art for the renderer. Art is optional:
// every lookup may return no frames, and the renderer falls back to flat
// placeholder shapes, so the game is playable from a bare checkout.
package assets

import (
	"fmt"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Provider hands out decoded frames by resource name. Names are
// slash-separated paths such as "entities/player/0/idle" or
// "tiles/grass/3".
type Provider interface {
	// Image returns a single image, or nil when the resource is absent.
	Image(name string) *ebiten.Image
	// Animation returns the ordered frames of an animation, or nil.
	Animation(name string) []*ebiten.Image
}

// Null is a Provider with no art at all. The renderer then draws flat
// rectangles, which is what the tests and the headless verify command use.
type Null struct{}

func (Null) Image(string) *ebiten.Image { return nil }

func (Null) Animation(string) []*ebiten.Image { return nil }

// Dir is a Provider backed by a directory tree of PNG files. The whole
// tree is scanned and decoded eagerly at construction, so a missing or
// broken file warns once at startup instead of stuttering mid-game.
type Dir struct {
	images map[string]*ebiten.Image
	anims  map[string][]*ebiten.Image
}

// LoadDir scans root for PNG art. A single image lives at <name>.png; an
// animation is a directory of numbered frames (<name>/00.png, 01.png, ...).
// Unreadable files are skipped with a warning; a missing root yields an
// empty provider.
func LoadDir(root string, logger *log.Logger) (*Dir, error) {
	d := &Dir{
		images: map[string]*ebiten.Image{},
		anims:  map[string][]*ebiten.Image{},
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		logger.Warn("asset directory missing, using placeholder art", "path", root)
		return d, nil
	}

	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".png") {
			return nil
		}
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			logger.Warn("skipping unreadable image", "path", path, "err", err)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		d.images[name] = img
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan assets %s: %w", root, err)
	}

	d.buildAnimations()
	logger.Debug("assets loaded", "images", len(d.images), "animations", len(d.anims))
	return d, nil
}

// buildAnimations groups frame files by their parent directory and orders
// them by file name, so 00.png .. 07.png become one eight-frame animation.
func (d *Dir) buildAnimations() {
	byDir := map[string][]string{}
	for name := range d.images {
		dir := filepath.ToSlash(filepath.Dir(name))
		if dir == "." {
			continue
		}
		byDir[dir] = append(byDir[dir], name)
	}
	for dir, names := range byDir {
		sort.Strings(names)
		frames := make([]*ebiten.Image, 0, len(names))
		for _, n := range names {
			frames = append(frames, d.images[n])
		}
		d.anims[dir] = frames
	}
}

func (d *Dir) Image(name string) *ebiten.Image { return d.images[name] }

func (d *Dir) Animation(name string) []*ebiten.Image { return d.anims[name] }
