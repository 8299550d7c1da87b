package engine

// NumTeams is the number of partner teams; seats 0/2 form team 0, seats 1/3
// team 1.
const NumTeams = 2

// SeatFinished reports whether all of seat's marbles are in its finish lane.
func (g *GameState) SeatFinished(seat uint8) bool {
	for _, m := range g.Players[seat].Marbles {
		if !IsInFinish(seat, m.Pos) {
			return false
		}
	}
	return true
}

// TeamFinished reports whether both seats of team have every marble home.
func (g *GameState) TeamFinished(team uint8) bool {
	return g.SeatFinished(team) && g.SeatFinished(team+2)
}

// checkWin ends the match when a team has finished.
func (g *GameState) checkWin() bool {
	for t := uint8(0); t < NumTeams; t++ {
		if g.TeamFinished(t) {
			g.Phase = PhaseFinished
			g.WinningTeam = int8(t)
			return true
		}
	}
	return false
}

// Progress returns how far seat's marbles have travelled: one point per
// track cell past the start, plus a bonus per marble in the finish lane.
// Used by bots and reports; it has no effect on the rules.
func (g *GameState) Progress(seat uint8) int {
	total := 0
	start := StartCell(seat)
	for _, m := range g.Players[seat].Marbles {
		switch {
		case IsInFinish(seat, m.Pos):
			total += TrackSize + int(m.Pos-FinishCell(seat, 0)) + 1
		case IsOnTrack(m.Pos):
			total += trackDistance(start, m.Pos) + 1
		}
	}
	return total
}
