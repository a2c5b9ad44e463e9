// internal/register/register_test.go
package register

import "testing"

func TestOperations_ReadOnlyBlocks(t *testing.T) {
	for _, b := range []BlockType{DiscreteInput, InputRegister} {
		if Operations(b).Writable() {
			t.Fatalf("%s should not be writable", b)
		}
	}
	for _, b := range []BlockType{Coil, HoldingRegister} {
		if !Operations(b).Writable() {
			t.Fatalf("%s should be writable", b)
		}
	}
}

func TestOperations_FunctionCodes(t *testing.T) {
	cases := []struct {
		block BlockType
		want  OperationSet
	}{
		{Coil, OperationSet{1, 5, 15}},
		{DiscreteInput, OperationSet{2, 0, 0}},
		{HoldingRegister, OperationSet{3, 6, 16}},
		{InputRegister, OperationSet{4, 0, 0}},
	}

	for _, c := range cases {
		if got := Operations(c.block); got != c.want {
			t.Fatalf("%s: got=%+v want=%+v", c.block, got, c.want)
		}
	}
}

func TestParseBlockType_RoundTripsString(t *testing.T) {
	for _, b := range BlockTypes {
		got, err := ParseBlockType(b.String())
		if err != nil {
			t.Fatalf("parse %q: %v", b.String(), err)
		}
		if got != b {
			t.Fatalf("parse %q: got=%s", b.String(), got)
		}
	}

	if _, err := ParseBlockType("analog_input"); err == nil {
		t.Fatalf("expected error for unknown block type")
	}
}

func TestMaxQuantity(t *testing.T) {
	if MaxQuantity(ReadHoldingRegisters) != 125 {
		t.Fatalf("fc3 limit")
	}
	if MaxQuantity(ReadCoils) != 2000 {
		t.Fatalf("fc1 limit")
	}
	if MaxQuantity(WriteMultipleRegisters) != 123 {
		t.Fatalf("fc16 limit")
	}
	if MaxQuantity(WriteSingleCoil) != 1 {
		t.Fatalf("fc5 limit")
	}
}
