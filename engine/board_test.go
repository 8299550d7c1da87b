package engine

import "testing"

func TestBoardLayout(t *testing.T) {
	starts := [NumSeats]Pos{0, 16, 32, 48}
	for seat := uint8(0); seat < NumSeats; seat++ {
		if StartCell(seat) != starts[seat] {
			t.Errorf("StartCell(%d): want %d, got %d", seat, starts[seat], StartCell(seat))
		}
	}
	if KennelCell(0, 0) != 64 || FinishCell(0, 0) != 68 {
		t.Errorf("seat 0: kennel %d finish %d", KennelCell(0, 0), FinishCell(0, 0))
	}
	if KennelCell(3, 3) != 91 || FinishCell(3, 3) != 95 {
		t.Errorf("seat 3: kennel %d finish %d", KennelCell(3, 3), FinishCell(3, 3))
	}
}

func TestCellClassification(t *testing.T) {
	for pos := Pos(0); pos < NumCells; pos++ {
		track, kennel, finish := IsOnTrack(pos), IsKennelCell(pos), IsFinishCell(pos)
		n := 0
		for _, b := range []bool{track, kennel, finish} {
			if b {
				n++
			}
		}
		if n != 1 {
			t.Errorf("cell %d: track=%v kennel=%v finish=%v", pos, track, kennel, finish)
		}

		seat, ok := OwnerOf(pos)
		if ok == track {
			t.Errorf("OwnerOf(%d): ok=%v for track=%v", pos, ok, track)
		}
		if kennel && !IsInKennel(seat, pos) {
			t.Errorf("cell %d: owner %d but not in its kennel", pos, seat)
		}
		if finish && !IsInFinish(seat, pos) {
			t.Errorf("cell %d: owner %d but not in its finish lane", pos, seat)
		}
	}
	if _, ok := OwnerOf(NumCells); ok {
		t.Error("OwnerOf past the board should fail")
	}
}

func TestTrackArithmetic(t *testing.T) {
	if trackAdd(62, 3) != 1 {
		t.Errorf("trackAdd(62, 3): got %d", trackAdd(62, 3))
	}
	if trackAdd(2, -4) != 62 {
		t.Errorf("trackAdd(2, -4): got %d", trackAdd(2, -4))
	}
	if trackDistance(60, 4) != 8 {
		t.Errorf("trackDistance(60, 4): got %d", trackDistance(60, 4))
	}
	if trackDistance(5, 5) != 0 {
		t.Errorf("trackDistance(5, 5): got %d", trackDistance(5, 5))
	}
}

func TestTeams(t *testing.T) {
	for seat := uint8(0); seat < NumSeats; seat++ {
		p := Partner(seat)
		if Partner(p) != seat || p == seat {
			t.Errorf("Partner(%d) = %d", seat, p)
		}
		if TeamOf(seat) != TeamOf(p) {
			t.Errorf("seat %d and partner %d on different teams", seat, p)
		}
	}
	if TeamOf(0) == TeamOf(1) {
		t.Error("neighbours must be opponents")
	}
}
