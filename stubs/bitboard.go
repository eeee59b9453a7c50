package stubs

// BitBoard stores a whole board using individual bits instead of bytes
// This divides space required by 8
// Bits are stored row by row, whatever order the board came from
type BitBoard struct {
	RowLength int
	NumRows   int
	Bytes     []byte
}

func newBitBoard(height, width int) *BitBoard {
	return &BitBoard{
		RowLength: width,
		NumRows:   height,
		// Round up so boards that aren't a multiple of 8 still fit
		Bytes: make([]byte, (width*height+7)/8),
	}
}

func (b *BitBoard) set(row, col int) {
	bit := uint(row*b.RowLength + col)
	b.Bytes[bit>>3] |= 1 << (bit & 7)
}

// Get returns a cell in the bit array as if the array was a 2d slice
func (b *BitBoard) Get(row, col int) bool {
	bit := uint(row*b.RowLength + col)
	// Perform bitwise operations to get the byte and bit indices
	byteIdx := bit >> 3
	bitIdx := bit & 7
	// Return a boolean based on the bit value
	return b.Bytes[byteIdx]&(1<<bitIdx) > 0
}

// BitBoardFromColumns will construct a BitBoard from a flat slice stored column by column,
// the way the engine stores its cells
func BitBoardFromColumns(cells []bool, height, width int) *BitBoard {
	bitBoard := newBitBoard(height, width)
	for i, alive := range cells {
		if alive {
			bitBoard.set(i%height, i/height)
		}
	}
	return bitBoard
}

// ToSlice unpacks the bits into a 2d board slice indexed [row][col]
func (b *BitBoard) ToSlice() [][]bool {
	newBoard := make([][]bool, b.NumRows)
	for row := 0; row < b.NumRows; row++ {
		newBoard[row] = make([]bool, b.RowLength)
		for col := 0; col < b.RowLength; col++ {
			newBoard[row][col] = b.Get(row, col)
		}
	}
	return newBoard
}
