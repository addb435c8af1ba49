package game

import (
	"github.com/plus3/tilegate/ecs"
)

// Camera maps world pixels to screen pixels. Target is drawn at Offset.
type Camera struct {
	Target Position
	Offset Position
}

// NewCamera centres a tile of tileSize on a screen of the given size.
func NewCamera(screenW, screenH int, tileSize float64) *Camera {
	return &Camera{
		Offset: Position{
			X: float64(screenW)/2 - tileSize/2,
			Y: float64(screenH)/2 - tileSize/2,
		},
	}
}

// ToScreen converts a world position into screen coordinates.
func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	return x - c.Target.X + c.Offset.X, y - c.Target.Y + c.Offset.Y
}

// CameraFollowSystem points the camera at the followed entity.
type CameraFollowSystem struct {
	Camera *Camera
}

func (s *CameraFollowSystem) Requires() ecs.KindSet {
	return ecs.Kinds(KindCameraFollow, KindPosition, KindVelocity)
}

func (s *CameraFollowSystem) Update(frame *ecs.UpdateFrame, tracked, _ *ecs.EntitySet) {
	if s.Camera == nil {
		return
	}
	for _, id := range tracked.Slice() {
		if pos, ok := ecs.Get[Position](frame.Storage.Components(id)); ok {
			s.Camera.Target = *pos
		}
	}
}
