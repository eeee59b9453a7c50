package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetAliveCells(t *testing.T) {
	board := [][]bool{
		{false, true, false},
		{false, false, true},
	}
	cells := GetAliveCells(board)
	want := []Cell{{X: 1, Y: 0}, {X: 2, Y: 1}}
	if len(cells) != len(want) {
		t.Fatalf("got %v, want %v", cells, want)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("got %v, want %v", cells, want)
		}
	}
}

func TestReadAliveCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.gol")
	// 3 wide, 2 high, stored column by column
	data := "3;2;\n0;false;false;\n1;true;true;\n2;false;false;\n3;false;false;\n4;false;true;\n5;false;false;\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	width, height, cells, err := ReadAliveCells(path)
	if err != nil {
		t.Fatal(err)
	}
	if width != 3 || height != 2 {
		t.Errorf("got %dx%d, want 3x2", width, height)
	}
	want := []Cell{{X: 0, Y: 1}, {X: 2, Y: 0}}
	if len(cells) != len(want) || cells[0] != want[0] || cells[1] != want[1] {
		t.Errorf("got %v, want %v", cells, want)
	}
}

func TestReadAliveCellsBadFile(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"header.gol": "three;2;\n",
		"size.gol":   "0;2;\n",
		"line.gol":   "2;2;\n0;true\n",
	} {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte(data), 0o644)
		if _, _, _, err := ReadAliveCells(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if _, _, _, err := ReadAliveCells(filepath.Join(dir, "missing.gol")); err == nil {
		t.Errorf("missing file: expected an error")
	}
}
