package spatial_test

import (
	"testing"

	"github.com/plus3/tilegate/spatial"
	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b spatial.Box
		want bool
	}{
		{"partial overlap", spatial.Box{0, 0, 10, 10}, spatial.Box{5, 5, 10, 10}, true},
		{"disjoint", spatial.Box{0, 0, 10, 10}, spatial.Box{20, 20, 10, 10}, false},
		{"touching edge", spatial.Box{0, 0, 10, 10}, spatial.Box{10, 0, 10, 10}, false},
		{"contained", spatial.Box{0, 0, 10, 10}, spatial.Box{2, 2, 2, 2}, true},
		{"overlap on x only", spatial.Box{0, 0, 10, 10}, spatial.Box{5, 30, 10, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestResolveMovingRightSnapsToLeftFace(t *testing.T) {
	subject := spatial.Box{X: 0, Y: 0, W: 10, H: 10}
	target := spatial.Box{X: 8, Y: 0, W: 10, H: 10}

	resolved, side := spatial.Resolve(subject, target)

	assert.Equal(t, spatial.SideLeft, side)
	assert.Equal(t, -2.0, resolved.X)
	assert.Equal(t, 0.0, resolved.Y)
	assert.False(t, side.Vertical())
}

func TestResolveEachSide(t *testing.T) {
	target := spatial.Box{X: 0, Y: 0, W: 32, H: 32}

	tests := []struct {
		name    string
		subject spatial.Box
		side    spatial.Side
		want    spatial.Box
	}{
		{"falling onto top", spatial.Box{X: 8, Y: -28, W: 16, H: 32}, spatial.SideTop, spatial.Box{X: 8, Y: -32, W: 16, H: 32}},
		{"rising into bottom", spatial.Box{X: 8, Y: 30, W: 16, H: 16}, spatial.SideBottom, spatial.Box{X: 8, Y: 32, W: 16, H: 16}},
		{"pushing into left", spatial.Box{X: -14, Y: 8, W: 16, H: 16}, spatial.SideLeft, spatial.Box{X: -16, Y: 8, W: 16, H: 16}},
		{"pushing into right", spatial.Box{X: 29, Y: 8, W: 16, H: 16}, spatial.SideRight, spatial.Box{X: 32, Y: 8, W: 16, H: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, side := spatial.Resolve(tt.subject, target)
			assert.Equal(t, tt.side, side)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.Overlaps(target))
		})
	}
}

func TestCollisionSideTiesPreferVertical(t *testing.T) {
	// top and left penetrations are both 5
	subject := spatial.Box{X: 0, Y: 0, W: 10, H: 10}
	target := spatial.Box{X: 5, Y: 5, W: 10, H: 10}

	assert.Equal(t, spatial.SideTop, spatial.CollisionSide(subject, target))

	resolved, _ := spatial.Resolve(subject, target)
	assert.Equal(t, -5.0, resolved.Y)
	assert.Equal(t, 0.0, resolved.X)
}

func TestCollisionSideNoOverlap(t *testing.T) {
	subject := spatial.Box{X: 0, Y: 0, W: 10, H: 10}
	target := spatial.Box{X: 10, Y: 0, W: 10, H: 10}

	resolved, side := spatial.Resolve(subject, target)
	assert.Equal(t, spatial.SideNone, side)
	assert.Equal(t, subject, resolved)
	assert.Equal(t, "none", side.String())
}

func TestPenetrations(t *testing.T) {
	top, bottom, left, right := spatial.Penetrations(
		spatial.Box{X: 0, Y: 0, W: 10, H: 10},
		spatial.Box{X: 8, Y: 0, W: 10, H: 10},
	)
	assert.Equal(t, 10.0, top)
	assert.Equal(t, 10.0, bottom)
	assert.Equal(t, 2.0, left)
	assert.Equal(t, 18.0, right)
}
