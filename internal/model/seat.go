package model

import "fmt"

// Seat — место игрока в матче. Таблица мест задаёт точку возрождения и
// стартовые ключи явно, а не по позиции юнита в списке.
type Seat struct {
	ID      string
	Team    Team
	Respawn Point
	// StartKeys — сколько ключей своего цвета чемпион получает в начале матча.
	StartKeys int
}

// Seats is the seat table keyed by seat id.
type Seats map[string]Seat

// NewSeats builds a table from a list, rejecting duplicate ids.
func NewSeats(list []Seat) (Seats, error) {
	s := make(Seats, len(list))
	for _, seat := range list {
		if _, dup := s[seat.ID]; dup {
			return nil, fmt.Errorf("duplicate seat %q", seat.ID)
		}
		s[seat.ID] = seat
	}
	return s, nil
}

// RespawnLocation returns where the champion in seat comes back to life.
func (s Seats) RespawnLocation(seat string) (Point, bool) {
	st, ok := s[seat]
	if !ok {
		return Point{}, false
	}
	return st.Respawn, true
}
