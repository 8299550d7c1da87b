package engine

// maxPath is the longest walk a single card produces (King, 13 steps).
const maxPath = 13

// path lists the cells a marble enters, in order; the last one is where it
// stops. The departure cell is not included.
type path struct {
	cells [maxPath]Pos
	n     uint8
}

func (p *path) push(c Pos) { p.cells[p.n] = c; p.n++ }

func (p *path) end() Pos { return p.cells[p.n-1] }

func (p *path) each() []Pos { return p.cells[:p.n] }

// forwardPath walks steps cells forward from marble m of seat. intoFinish
// selects the branch into the seat's finish lane at its start cell; a marble
// already in the lane always continues inside it. ok is false when the walk
// leaves the board or the branch is not available.
func forwardPath(seat uint8, m Marble, steps int, intoFinish bool) (p path, ok bool) {
	if steps < 1 || steps > maxPath {
		return p, false
	}
	switch {
	case IsInFinish(seat, m.Pos):
		lane := int(m.Pos - FinishCell(seat, 0))
		if lane+steps >= MarblesPerPlayer {
			return p, false
		}
		for k := 1; k <= steps; k++ {
			p.push(FinishCell(seat, uint8(lane+k)))
		}
		return p, true

	case IsOnTrack(m.Pos):
		if !intoFinish {
			for k := 1; k <= steps; k++ {
				p.push(trackAdd(m.Pos, k))
			}
			return p, true
		}
		start := StartCell(seat)
		if m.Safe && m.Pos == start {
			return p, false
		}
		d := trackDistance(m.Pos, start)
		rest := steps - d
		if rest < 1 || rest > MarblesPerPlayer {
			return p, false
		}
		for k := 1; k <= d; k++ {
			p.push(trackAdd(m.Pos, k))
		}
		for k := 0; k < rest; k++ {
			p.push(FinishCell(seat, uint8(k)))
		}
		return p, true
	}
	return p, false
}

// backwardPath walks steps cells backwards along the track.
func backwardPath(m Marble, steps int) (p path, ok bool) {
	if !IsOnTrack(m.Pos) || steps < 1 || steps > maxPath {
		return p, false
	}
	for k := 1; k <= steps; k++ {
		p.push(trackAdd(m.Pos, -k))
	}
	return p, true
}

// pathClear reports whether marble (seat, idx) may walk p: no cell holds a
// safe marble on its own start, and no occupied finish cell is passed or
// landed on. Other marbles on the track may be passed.
func (g *GameState) pathClear(seat, idx uint8, p *path) bool {
	for _, c := range p.each() {
		os, oi, ok := g.MarbleAt(c)
		if !ok || (os == seat && oi == idx) {
			continue
		}
		if g.isBlocker(os, oi) || IsFinishCell(c) {
			return false
		}
	}
	return true
}

// sevenDistance returns the forward steps from one cell to another for seat:
// circular on the track, linear inside the finish lane, and the sum of both
// when entering the lane. ok is false for any other pair.
func sevenDistance(seat uint8, from, to Pos) (steps int, intoFinish bool, ok bool) {
	switch {
	case IsOnTrack(from) && IsOnTrack(to):
		return trackDistance(from, to), false, true
	case IsOnTrack(from) && IsInFinish(seat, to):
		return trackDistance(from, StartCell(seat)) + int(to-FinishCell(seat, 0)) + 1, true, true
	case IsInFinish(seat, from) && IsInFinish(seat, to):
		return int(to) - int(from), false, true
	}
	return 0, false, false
}

// ownMarbleAt finds seat's marble on pos.
func (g *GameState) ownMarbleAt(seat uint8, pos Pos) (uint8, bool) {
	for m := uint8(0); m < MarblesPerPlayer; m++ {
		if g.Players[seat].Marbles[m].Pos == pos {
			return m, true
		}
	}
	return 0, false
}

// freeKennelCell returns the lowest empty kennel cell of seat.
func (g *GameState) freeKennelCell(seat uint8) Pos {
	for i := uint8(0); i < MarblesPerPlayer; i++ {
		c := KennelCell(seat, i)
		if _, _, taken := g.MarbleAt(c); !taken {
			return c
		}
	}
	return KennelCell(seat, 0)
}

// sendHome returns whatever marble sits on cell, other than the mover, to
// its owner's kennel.
func (g *GameState) sendHome(cell Pos, moverSeat, moverIdx uint8) {
	os, oi, ok := g.MarbleAt(cell)
	if !ok || (os == moverSeat && oi == moverIdx) {
		return
	}
	m := &g.Players[os].Marbles[oi]
	m.Pos = g.freeKennelCell(os)
	m.Safe = false
}
