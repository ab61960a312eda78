package model

// Overlay — покрытие клетки поверх рельефа.
type Overlay int8

const (
	OverlayNone    Overlay = iota
	OverlayBush            // скрывает стоящего юнита, позволяет засаду
	OverlayBarrier         // непроходимо, пока барьер стороны не пал
)

func (o Overlay) String() string {
	switch o {
	case OverlayBush:
		return "bush"
	case OverlayBarrier:
		return "barrier"
	default:
		return "none"
	}
}
