package engine

// trail recomputes the trailing stop for the open position using the
// accelerating-step algorithm. Nothing happens until the market makes
// a new favorable extreme close; then the acceleration factor is
// multiplied by the current stop distance and the stop steps toward
// the market by that amount. The stop only ever moves in the
// position's favor. If the stepped stop would meet or cross the
// current price the position is flattened defensively instead of
// placing a nonsensical stop.
//
// The multiplicative update makes the step size path-dependent: each
// new extreme rescales the acceleration by the current stop distance.
func (e *Engine) trail(close float64) error {
	p := e.open
	if p == nil {
		return ErrNoPosition
	}

	switch p.direction {
	case Long:
		if close <= p.furthestClose {
			return nil
		}
		p.furthestClose = close
		p.acceleration *= p.furthestClose - p.stop.Price
		if next := p.stop.Price + p.acceleration; next < close {
			return e.modifyStop(next, labelTrailing)
		}
		return e.exit()
	case Short:
		if close >= p.furthestClose {
			return nil
		}
		p.furthestClose = close
		p.acceleration *= p.stop.Price - p.furthestClose
		if next := p.stop.Price - p.acceleration; next > close {
			return e.modifyStop(next, labelTrailing)
		}
		return e.exit()
	default:
		return ErrNoPosition
	}
}
