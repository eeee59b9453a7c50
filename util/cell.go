package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Cell is used as the return type for the testing framework.
// X is the column and Y is the row.
type Cell struct {
	X, Y int
}

// GetAliveCells returns all the alive cells in a board indexed [row][col]
func GetAliveCells(board [][]bool) []Cell {
	aliveCells := make([]Cell, 0)
	for row := range board {
		for col := range board[row] {
			if board[row][col] {
				aliveCells = append(aliveCells, Cell{X: col, Y: row})
			}
		}
	}
	return aliveCells
}

// ReadAliveCells reads a saved grid and returns its size and the cells that are alive in it.
// It only looks at the alive field of each cell line.
func ReadAliveCells(path string) (width, height int, cells []Cell, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, err
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	header := strings.Split(strings.TrimSpace(lines[0]), ";")
	if len(header) < 2 {
		return 0, 0, nil, fmt.Errorf("not a saved grid: %q", lines[0])
	}
	if width, err = strconv.Atoi(header[0]); err != nil {
		return 0, 0, nil, err
	}
	if height, err = strconv.Atoi(header[1]); err != nil {
		return 0, 0, nil, err
	}
	if width < 1 || height < 1 {
		return 0, 0, nil, fmt.Errorf("incorrect size %dx%d", width, height)
	}

	cells = make([]Cell, 0)
	for n, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			return 0, 0, nil, fmt.Errorf("line %d: incorrect number of fields", n+2)
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, nil, fmt.Errorf("line %d: %w", n+2, err)
		}
		alive, err := strconv.ParseBool(fields[2])
		if err != nil {
			return 0, 0, nil, fmt.Errorf("line %d: %w", n+2, err)
		}
		// Cells are stored column by column
		if alive {
			cells = append(cells, Cell{X: index / height, Y: index % height})
		}
	}
	return width, height, cells, nil
}
