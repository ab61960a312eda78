package model

// MatchState — общее состояние матча. Передаётся в операции планировщика
// и трекера целей и возвращается из них; глобальных переменных нет.
type MatchState struct {
	Turn   int // номер хода, начинается с 1
	Active int // индекс активного юнита в очереди

	KeysInitialized bool
	RedBarrierDown  bool
	BlueBarrierDown bool

	// Exhausted is set when no living player unit is left to schedule.
	Exhausted bool
	Winner    Team
}

// NewMatchState returns the state of a match that has not started yet.
func NewMatchState() MatchState {
	return MatchState{Turn: 1}
}

// BarrierDown reports whether the barrier protecting team's base has fallen.
func (s MatchState) BarrierDown(team Team) bool {
	switch team {
	case TeamRed:
		return s.RedBarrierDown
	case TeamBlue:
		return s.BlueBarrierDown
	default:
		return false
	}
}

// WithBarrierDown returns a copy with team's barrier marked down.
func (s MatchState) WithBarrierDown(team Team) MatchState {
	switch team {
	case TeamRed:
		s.RedBarrierDown = true
	case TeamBlue:
		s.BlueBarrierDown = true
	}
	return s
}

// Over reports whether a base has been destroyed.
func (s MatchState) Over() bool {
	return s.Winner != TeamNone
}
