package render

import (
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
)

// maxLineHeight caps projected walls so tiny distances never overflow int.
const maxLineHeight = 1 << 20

// LineHeight is screenH / dist truncated. It reports false when dist is not
// a positive finite number, in which case no wall is drawn.
func LineHeight(screenH int, dist float64) (int, bool) {
	if !(dist > 0) || math.IsInf(dist, 0) {
		return 0, false
	}
	h := float64(screenH) / dist
	if h > maxLineHeight {
		return maxLineHeight, true
	}
	return int(h), true
}

// DrawRange centers a wall of lineHeight pixels on the horizon shifted by
// pitch and clamps both ends to [0, screenH-1].
func DrawRange(lineHeight, screenH, pitch int) (start, end int) {
	horizon := screenH/2 + pitch
	start = mathutil.IntClamp(horizon-lineHeight/2, 0, screenH-1)
	end = mathutil.IntClamp(horizon+lineHeight/2, 0, screenH-1)
	return start, end
}

// WallX is the fractional position of the hit along the wall face.
func WallX(hit raycast.Hit) float64 {
	var w float64
	if hit.Side == raycast.SideX {
		w = hit.Origin.Y + hit.RayParam*hit.RayDir.Y
	} else {
		w = hit.Origin.X + hit.RayParam*hit.RayDir.X
	}
	return w - math.Floor(w)
}

// TexX maps wallX to a texture column, mirrored for faces seen from the
// back so every face reads left to right.
func TexX(wallX float64, texW int, side raycast.Side, rayDir raycast.Vec) int {
	x := mathutil.IntClamp(int(wallX*float64(texW)), 0, texW-1)
	if (side == raycast.SideX && rayDir.X > 0) || (side == raycast.SideY && rayDir.Y < 0) {
		x = MirrorTexX(x, texW)
	}
	return x
}

// MirrorTexX flips a texture column. Applying it twice is the identity.
func MirrorTexX(x, texW int) int {
	return texW - x - 1
}

// TexStart is the texture row sampled at screen row start, so clipped spans
// only sample their visible part.
func TexStart(start, lineHeight, screenH, pitch int, step float64) float64 {
	return float64(start-pitch-screenH/2+lineHeight/2) * step
}
