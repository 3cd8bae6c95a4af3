package engine

// Oscillator band crossing detection. The previous value sitting
// exactly on the level counts as "not yet crossed", so a bar where
// D moves off the level itself still fires.

// crossedAbove reports an upward crossing of level between the
// previous and current oscillator values.
func crossedAbove(prev, curr, level float64) bool {
	return prev <= level && curr > level
}

// crossedBelow reports a downward crossing of level.
func crossedBelow(prev, curr, level float64) bool {
	return prev >= level && curr < level
}
