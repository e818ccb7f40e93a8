// Package level supplies the fixed arena layouts: spawn points, walls and
// powerups for each supported player count.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
)

//go:embed layouts.toml
var layoutsTOML string

var (
	ErrNoLayout = errors.New("no layout for player count")
	ErrLayout   = errors.New("invalid layout")
)

// WallSize is one of the three fixed wall lengths
type WallSize int

const (
	WallSmall WallSize = iota + 1
	WallMedium
	WallLarge
)

// Length returns the wall length in world units
func (s WallSize) Length() float64 {
	switch s {
	case WallSmall:
		return 200
	case WallMedium:
		return 400
	default:
		return 600
	}
}

func (s WallSize) String() string {
	switch s {
	case WallSmall:
		return "small"
	case WallMedium:
		return "medium"
	case WallLarge:
		return "large"
	}
	return fmt.Sprintf("WallSize(%d)", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *WallSize) UnmarshalText(b []byte) error {
	switch string(b) {
	case "small":
		*s = WallSmall
	case "medium":
		*s = WallMedium
	case "large":
		*s = WallLarge
	default:
		return fmt.Errorf("%w: wall size %q", ErrLayout, b)
	}
	return nil
}

// PowerupKind names the ammunition a powerup grants
type PowerupKind int

const (
	PowerupSMG PowerupKind = iota + 1
	PowerupMine
)

func (k PowerupKind) String() string {
	switch k {
	case PowerupSMG:
		return "smg"
	case PowerupMine:
		return "mine"
	}
	return fmt.Sprintf("PowerupKind(%d)", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PowerupKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "smg":
		*k = PowerupSMG
	case "mine":
		*k = PowerupMine
	default:
		return fmt.Errorf("%w: powerup kind %q", ErrLayout, b)
	}
	return nil
}

// Wall is one wall placement. Turned walls are rotated a quarter turn about Z
// so they run along Y.
type Wall struct {
	Pos    [2]float64 `toml:"pos"`
	Size   WallSize   `toml:"size"`
	Turned bool       `toml:"turned"`
}

// Powerup is one powerup placement
type Powerup struct {
	Pos  [2]float64  `toml:"pos"`
	Kind PowerupKind `toml:"kind"`
}

// Layout is the arena for one player count
type Layout struct {
	Players  int          `toml:"players"`
	Spawns   [][2]float64 `toml:"spawns"`
	Walls    []Wall       `toml:"wall"`
	Powerups []Powerup    `toml:"powerup"`
}

// Spawn returns the spawn point for player i
func (l Layout) Spawn(i int) mgl64.Vec3 {
	p := l.Spawns[i]
	return mgl64.Vec3{p[0], p[1], 0}
}

// Vec3 lifts a placement onto the z=0 plane
func Vec3(p [2]float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], p[1], 0}
}

// Set holds layouts keyed by player count
type Set struct {
	layouts map[int]Layout
}

// Parse decodes a layouts document
func Parse(data string) (*Set, error) {
	var doc struct {
		Layout []Layout `toml:"layout"`
	}
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("decode layouts: %w", err)
	}

	s := &Set{layouts: make(map[int]Layout, len(doc.Layout))}
	for _, l := range doc.Layout {
		if l.Players < 1 {
			return nil, fmt.Errorf("%w: players %d", ErrLayout, l.Players)
		}
		if len(l.Spawns) != l.Players {
			return nil, fmt.Errorf("%w: %d players but %d spawns", ErrLayout, l.Players, len(l.Spawns))
		}
		if _, dup := s.layouts[l.Players]; dup {
			return nil, fmt.Errorf("%w: duplicate layout for %d players", ErrLayout, l.Players)
		}
		s.layouts[l.Players] = l
	}
	return s, nil
}

var builtin = sync.OnceValues(func() (*Set, error) {
	return Parse(layoutsTOML)
})

// Builtin returns the layouts shipped with the module
func Builtin() *Set {
	s, err := builtin()
	if err != nil {
		panic(fmt.Sprintf("level: embedded layouts: %v", err))
	}
	return s
}

// For returns the layout for the given player count
func (s *Set) For(players int) (Layout, error) {
	l, ok := s.layouts[players]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %d", ErrNoLayout, players)
	}
	return l, nil
}

// PlayerCounts lists the supported player counts in ascending order
func (s *Set) PlayerCounts() []int {
	counts := make([]int, 0, len(s.layouts))
	for n := range s.layouts {
		counts = append(counts, n)
	}
	slices.Sort(counts)
	return counts
}
