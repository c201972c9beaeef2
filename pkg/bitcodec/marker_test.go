package bitcodec

import "testing"

func TestTerminator(t *testing.T) {
	if Terminator.String() != TerminatorPattern {
		t.Errorf("Terminator = %s, want %s", Terminator, TerminatorPattern)
	}
	if len(Terminator) != 32 {
		t.Errorf("len(Terminator) = %d, want 32", len(Terminator))
	}
}

func TestFindMarker(t *testing.T) {
	tests := []struct {
		name   string
		bits   string
		marker string
		want   int
	}{
		{"AtStart", "1100", "11", 0},
		{"InMiddle", "0011010", "101", 3},
		{"FirstWins", "0110110", "11", 1},
		{"Absent", "000000", "1", -1},
		{"MarkerLonger", "01", "011", -1},
		{"EmptyMarker", "0101", "", 0},
		{"EmptyBits", "", "1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMarker(MustParseBits(tt.bits), MustParseBits(tt.marker))
			if got != tt.want {
				t.Errorf("FindMarker(%s, %s) = %d, want %d", tt.bits, tt.marker, got, tt.want)
			}
		})
	}
}

func TestFindMarker_AfterPayload(t *testing.T) {
	payload := ToBits([]byte("gAAAAABm"))
	stream := append(append(Bits{}, payload...), Terminator...)
	stream = append(stream, 0, 1, 1, 0)

	if got := FindMarker(stream, Terminator); got != len(payload) {
		t.Errorf("FindMarker() = %d, want %d", got, len(payload))
	}
}
