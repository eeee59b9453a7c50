package gol

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Delimiter separates the fields of every line in a saved grid
const Delimiter = ';'

// ErrNothingToLoad is returned by Load when the file doesn't exist
var ErrNothingToLoad = errors.New("nothing to load")

// ParseError reports a line of a saved grid that couldn't be read
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DefaultSaveName makes a file name for a grid saved at time t
func DefaultSaveName(width, height int, t time.Time) string {
	return fmt.Sprintf("%dx%d_%s.gol", width, height, t.Format("20060102-150405"))
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return cw
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	// The header and the cell lines have different numbers of fields
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// WriteGrid writes the size of the grid, then one line per cell in index order:
//
//	width;height;
//	index;initial;alive;
func WriteGrid(w io.Writer, g *Grid) error {
	cw := newWriter(w)
	// The trailing empty field gives every line a trailing delimiter
	if err := cw.Write([]string{strconv.Itoa(g.Width()), strconv.Itoa(g.Height()), ""}); err != nil {
		return err
	}
	for i := 0; i < g.Len(); i++ {
		cell := g.CellAt(i)
		record := []string{strconv.Itoa(i), strconv.FormatBool(cell.IsInitial()), strconv.FormatBool(cell.IsAlive()), ""}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGrid builds a grid from the format written by WriteGrid.
// Only live cells are toggled since a new grid starts off dead.
// If a cell line is bad, the grid read so far is returned along with the error.
func ReadGrid(r io.Reader) (*Grid, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{1, io.ErrUnexpectedEOF}
	}
	if err != nil {
		return nil, &ParseError{1, err}
	}
	if len(header) < 2 {
		return nil, &ParseError{1, fmt.Errorf("want width and height, got %d fields", len(header))}
	}
	width, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, &ParseError{1, err}
	}
	height, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, &ParseError{1, err}
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, &ParseError{1, err}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return g, nil
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return g, &ParseError{csvErr.Line, csvErr.Err}
			}
			return g, err
		}
		line, _ := cr.FieldPos(0)
		if err := readCell(g, record); err != nil {
			return g, &ParseError{line, err}
		}
	}
}

func readCell(g *Grid, record []string) error {
	if len(record) < 3 {
		return fmt.Errorf("want index, initial and alive, got %d fields", len(record))
	}
	index, err := strconv.Atoi(record[0])
	if err != nil {
		return err
	}
	if index < 0 || index >= g.Len() {
		return fmt.Errorf("index %d is not on a %dx%d grid", index, g.Width(), g.Height())
	}
	initial, err := strconv.ParseBool(record[1])
	if err != nil {
		return err
	}
	alive, err := strconv.ParseBool(record[2])
	if err != nil {
		return err
	}

	col, row := g.Coords(index)
	g.SetInitial(col, row, initial)
	if alive {
		g.ToggleLife(col, row, true)
	}
	return nil
}

// Save writes the grid to path, overwriting anything already there
func (c *Controller) Save(path string) error {
	return c.exclusive(false, func() error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("saving grid: %w", err)
		}
		defer f.Close()

		if err := WriteGrid(f, c.grid); err != nil {
			return fmt.Errorf("saving grid: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("saving grid: %w", err)
		}
		c.emit(BoardSaved{c.Turn(), path})
		return nil
	})
}

// Load replaces the grid with one read from path.
// A missing file returns ErrNothingToLoad and leaves the grid alone.
// If the file goes bad part way through, the cells read so far are kept.
func (c *Controller) Load(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNothingToLoad, err)
	}
	if err != nil {
		return fmt.Errorf("loading grid: %w", err)
	}
	defer f.Close()

	return c.exclusive(true, func() error {
		g, err := ReadGrid(f)
		if g != nil {
			c.replaceGrid(g)
			c.emit(GridResized{0, g.Width(), g.Height(), false})
			c.emit(BoardLoaded{0, path, g.Width(), g.Height()})
		}
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		return nil
	})
}
