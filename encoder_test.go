package huffzip

import (
	"bytes"
	"errors"
	"testing"
)

func TestPadBits(t *testing.T) {
	type testRow struct {
		nbits  uint64
		expect byte
	}

	testData := [...]testRow{
		{0, 0},
		{1, 7},
		{4, 4},
		{7, 1},
		{8, 0},
		{9, 7},
		{16, 0},
	}
	for _, row := range testData {
		if actual := PadBits(row.nbits); actual != row.expect {
			t.Errorf("PadBits(%d): expected %d, got %d", row.nbits, row.expect, actual)
		}
	}
}

func TestEncoder(t *testing.T) {
	ct := mustCodeTable(t, textbookText)

	var buf bytes.Buffer
	e := NewEncoder(ct, &buf)
	if err := e.WriteText("face"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	// "0" "1100" "100" "111" = 01100100 111xxxxx
	if e.Bits() != 11 {
		t.Errorf("expected 11 bits, got %d", e.Bits())
	}
	pad, err := e.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if pad != 5 {
		t.Errorf("expected 5 pad bits, got %d", pad)
	}

	expect := []byte{0x64, 0xe0}
	if actual := buf.Bytes(); !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", expect, actual)
	}
}

func TestEncoder_Aligned(t *testing.T) {
	ct := mustCodeTable(t, "aaaaaaab")

	var buf bytes.Buffer
	e := NewEncoder(ct, &buf)
	if err := e.WriteText("aaaaaaab"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	pad, err := e.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if pad != 0 {
		t.Errorf("expected 0 pad bits, got %d", pad)
	}
	if buf.Len() != 1 {
		t.Errorf("expected 1 byte, got %d", buf.Len())
	}
}

func TestEncoder_UnknownSymbol(t *testing.T) {
	ct := mustCodeTable(t, "abc")

	var buf bytes.Buffer
	e := NewEncoder(ct, &buf)
	if err := e.WriteSymbol('z'); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}
