package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumukhanand/clamor/internal/level"
)

func TestNewPlayer(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(1)

	if p.Index != 1 {
		t.Errorf("expected index 1, got %d", p.Index)
	}
	if p.Health != PlayerMaxHealth {
		t.Errorf("expected health %d, got %d", PlayerMaxHealth, p.Health)
	}
	if !p.Alive {
		t.Error("expected player to be alive")
	}
	assertVec(t, mgl64.Vec3{1, 0, 0}, p.Facing())
	assert.Equal(t, GunPistol, p.Current)
}

func TestPlayerMoves(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)

	tests := []struct {
		move func()
		want mgl64.Vec3
	}{
		{p.MoveUp, mgl64.Vec3{0, PlayerMaxSpeed, 0}},
		{p.MoveDown, mgl64.Vec3{0, -PlayerMaxSpeed, 0}},
		{p.MoveLeft, mgl64.Vec3{-PlayerMaxSpeed, 0, 0}},
		{p.MoveRight, mgl64.Vec3{PlayerMaxSpeed, 0, 0}},
		{func() { p.Move(mgl64.Vec2{0.5, -0.5}) }, mgl64.Vec3{750, -750, 0}},
		{p.Stop, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		tt.move()
		assert.Equal(t, tt.want, p.Velocity)
	}
}

func TestPlayerRotate(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)

	p.RotateLeft(0.25)
	assertVec(t, mgl64.Vec3{0, 1, 0}, p.Facing())
	p.RotateRight(0.5)
	assertVec(t, mgl64.Vec3{0, -1, 0}, p.Facing())

	require.True(t, p.Aim(mgl64.Vec2{-2, 0}))
	assertVec(t, mgl64.Vec3{-1, 0, 0}, p.Facing())
	assert.False(t, p.Aim(mgl64.Vec2{}))
}

func TestPlayerTakeDamage(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)

	died := p.TakeDamage(30)
	if died {
		t.Error("should not have died from 30 damage")
	}
	if p.Health != 70 {
		t.Errorf("expected health 70, got %d", p.Health)
	}
	assert.True(t, p.Hit())

	r.timers.Advance(HitDuration)
	assert.False(t, p.Hit(), "hit flash clears")

	assert.True(t, p.TakeDamage(70))
}

func TestPlayerFireCooldown(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)

	require.True(t, p.Fire())
	assert.False(t, p.Fire(), "cooling down")
	assert.Equal(t, 6, p.Gun().Magazine)

	r.Update(0.31)
	require.True(t, p.Fire())
	assert.Equal(t, 5, p.Gun().Magazine)
	assert.Len(t, r.Missiles(), 2)
}

func TestPlayerMissileLaunch(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)
	p.Aim(mgl64.Vec2{0, 1})

	require.True(t, p.Fire())
	m := r.Missiles()[0]
	assert.Equal(t, 0, m.Owner)
	assert.Equal(t, 20, m.Damage)
	assert.Equal(t, p.Position(), m.Position())
	assertVec(t, mgl64.Vec3{0, MissileSpeed, 0}, m.Velocity)
}

func TestPlayerFireEmptyMagazine(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)
	p.Guns[GunPistol].Magazine = 0

	assert.False(t, p.Fire())
	assert.Empty(t, r.Missiles())
}

func TestPlayerLaysMine(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)
	p.AddAmmo(level.PowerupMine)
	require.True(t, p.SwitchWeapon(GunMineLayer))
	require.True(t, p.Reload())
	r.timers.Advance(ReloadTime)
	require.Equal(t, 1, p.Gun().Magazine)

	require.True(t, p.Fire())
	require.Len(t, r.Mines(), 1)
	mine := r.Mines()[0]
	assert.False(t, mine.Armed)
	assert.Equal(t, 0, mine.Owner)
	assert.Equal(t, 60, mine.Damage)
	assert.Empty(t, r.Missiles())

	r.timers.Advance(MineArmDelay)
	assert.True(t, mine.Armed)
}

func TestSwitchWeaponRange(t *testing.T) {
	r, _ := newTestRound(t, openTwo, 2, Options{})
	p := r.Player(0)
	assert.False(t, p.SwitchWeapon(GunKind(3)))
	assert.False(t, p.SwitchWeapon(GunKind(-1)))
	assert.True(t, p.SwitchWeapon(GunSMG))
	assert.Equal(t, GunSMG, p.Current)
}

func TestDyingPlayerStaysPaused(t *testing.T) {
	r, _ := newTestRound(t, openFour, 4, Options{})
	p := r.Player(2)
	p.Alive = false
	r.Update(0.01)
	require.True(t, p.Dying())

	r.SetPaused(true)
	r.SetPaused(false)
	assert.True(t, p.Paused)
	assert.False(t, r.Player(0).Paused)
}
