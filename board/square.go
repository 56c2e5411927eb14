package board

// Square represents a board position (0-63). Index = rank*8 + file where rank 0
// is Black's back rank, so a8 = 0 and h1 = 63.
type Square int8

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A8 Square = 0
	B8 Square = 1
	C8 Square = 2
	D8 Square = 3
	E8 Square = 4
	F8 Square = 5
	G8 Square = 6
	H8 Square = 7

	A1 Square = 56
	B1 Square = 57
	C1 Square = 58
	D1 Square = 59
	E1 Square = 60
	F1 Square = 61
	G1 Square = 62
	H1 Square = 63
)

// SquareAt returns the square on the given rank index and file. It does not
// range-check its arguments.
func SquareAt(rank, file int) Square { return Square(rank*8 + file) }

// Rank returns the rank index (0 = Black's back rank).
func (s Square) Rank() int { return int(s) / 8 }

// File returns the file index (0 = a-file).
func (s Square) File() int { return int(s) % 8 }

// Valid reports whether s lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// Mirror flips the square vertically (a8 <-> a1).
func (s Square) Mirror() Square { return SquareAt(7-s.Rank(), s.File()) }

// IsLight reports whether the square is a light square.
func (s Square) IsLight() bool { return (s.Rank()+s.File())%2 == 0 }

// String returns the algebraic name of the square ("e4"), or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '8' - byte(s.Rank())})
}
