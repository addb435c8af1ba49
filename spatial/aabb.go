package spatial

// Box is an axis-aligned bounding box with (X, Y) as its top-left corner.
type Box struct {
	X, Y, W, H float64
}

func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }

// Overlaps reports whether the projections of b and o intersect on both
// axes. Boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Side names the face of the penetration that is resolved.
type Side int

const (
	SideNone Side = iota
	// SideTop: the subject's bottom went through the target's top.
	SideTop
	// SideBottom: the subject's top went through the target's bottom.
	SideBottom
	// SideLeft: the subject's right went through the target's left.
	SideLeft
	// SideRight: the subject's left went through the target's right.
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Vertical reports whether resolving s moves the subject along Y.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// Penetrations returns the top, bottom, left and right penetration depths
// of subject into target.
func Penetrations(subject, target Box) (top, bottom, left, right float64) {
	top = subject.Bottom() - target.Y
	bottom = target.Bottom() - subject.Y
	left = subject.Right() - target.X
	right = target.Right() - subject.X
	return
}

// CollisionSide picks the side with the smallest penetration. Equal depths
// are broken in the order top, bottom, left, right. Boxes that do not
// overlap yield SideNone.
func CollisionSide(subject, target Box) Side {
	if !subject.Overlaps(target) {
		return SideNone
	}

	top, bottom, left, right := Penetrations(subject, target)
	sides := [...]struct {
		side  Side
		depth float64
	}{
		{SideTop, top},
		{SideBottom, bottom},
		{SideLeft, left},
		{SideRight, right},
	}

	best := sides[0]
	for _, s := range sides[1:] {
		if s.depth < best.depth {
			best = s
		}
	}
	return best.side
}

// Resolve snaps subject flush against target on the side with the smallest
// penetration. It returns the corrected box and the side used; velocity on
// the axis of that side should be zeroed by the caller.
func Resolve(subject, target Box) (Box, Side) {
	side := CollisionSide(subject, target)
	switch side {
	case SideTop:
		subject.Y = target.Y - subject.H
	case SideBottom:
		subject.Y = target.Bottom()
	case SideLeft:
		subject.X = target.X - subject.W
	case SideRight:
		subject.X = target.Right()
	}
	return subject, side
}
