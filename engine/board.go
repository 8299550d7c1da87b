package engine

// Board geometry. The shared track is cells 0..63; every seat owns a block of
// eight cells above the track, four kennel cells followed by four finish cells.
const (
	NumSeats         = 4
	MarblesPerPlayer = 4
	TrackSize        = 64
	cellsPerSeat     = 8
	NumCells         = TrackSize + NumSeats*cellsPerSeat
	startSpacing     = TrackSize / NumSeats
)

// Pos is a board cell id.
type Pos uint8

// NoPos marks an absent position in an Action.
const NoPos Pos = 0xFF

// StartCell returns the track cell a seat's marbles enter on.
func StartCell(seat uint8) Pos { return Pos(startSpacing * int(seat)) }

// KennelCell returns the i-th kennel cell of seat.
func KennelCell(seat, i uint8) Pos { return Pos(TrackSize + cellsPerSeat*int(seat) + int(i)) }

// FinishCell returns the i-th finish cell of seat; index 0 is the lane entry.
func FinishCell(seat, i uint8) Pos {
	return Pos(TrackSize + cellsPerSeat*int(seat) + MarblesPerPlayer + int(i))
}

// IsOnTrack reports whether pos is on the shared circular track.
func IsOnTrack(pos Pos) bool { return pos < TrackSize }

// IsInKennel reports whether pos is one of seat's kennel cells.
func IsInKennel(seat uint8, pos Pos) bool {
	return pos >= KennelCell(seat, 0) && pos <= KennelCell(seat, MarblesPerPlayer-1)
}

// IsInFinish reports whether pos is one of seat's finish cells.
func IsInFinish(seat uint8, pos Pos) bool {
	return pos >= FinishCell(seat, 0) && pos <= FinishCell(seat, MarblesPerPlayer-1)
}

// IsKennelCell reports whether pos is a kennel cell of any seat.
func IsKennelCell(pos Pos) bool {
	return pos >= TrackSize && pos < NumCells && (int(pos)-TrackSize)%cellsPerSeat < MarblesPerPlayer
}

// IsFinishCell reports whether pos is a finish cell of any seat.
func IsFinishCell(pos Pos) bool {
	return pos >= TrackSize && pos < NumCells && (int(pos)-TrackSize)%cellsPerSeat >= MarblesPerPlayer
}

// OwnerOf returns the seat owning a kennel or finish cell. ok is false for
// track cells and out-of-range values.
func OwnerOf(pos Pos) (seat uint8, ok bool) {
	if pos < TrackSize || pos >= NumCells {
		return 0, false
	}
	return uint8((int(pos) - TrackSize) / cellsPerSeat), true
}

// trackAdd moves n cells along the circular track; n may be negative.
func trackAdd(pos Pos, n int) Pos {
	return Pos(((int(pos)+n)%TrackSize + TrackSize) % TrackSize)
}

// trackDistance is the number of forward steps from a to b on the track.
func trackDistance(a, b Pos) int {
	return ((int(b)-int(a))%TrackSize + TrackSize) % TrackSize
}
