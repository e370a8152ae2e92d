package normalizer

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{3, "3", true},
		{"3", "3", true},
		{"03", "3", true},
		{" 12 ", "12", true},
		{int64(24), "24", true},
		{uint8(6), "6", true},
		{3.0, "3", true},
		{json.Number("11"), "11", true},
		{"1-2-3", "1-2-3", true},
		{"1=2", "1=2", true},
		{"-1", "-1", true},
		{3.5, "", false},
		{math.NaN(), "", false},
		{math.Inf(1), "", false},
		{1e19, "", false},
		{-1e19, "", false},
		{float64(1 << 62), "4611686018427387904", true},
		{"", "", false},
		{"   ", "", false},
		{nil, "", false},
		{true, "", false},
	}

	for _, tt := range tests {
		got, ok := canonicalKey(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("canonicalKey(%#v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{180, 180, false},
		{int32(7), 7, false},
		{180.0, 180, false},
		{json.Number("2310"), 2310, false},
		{"450", 450, false},
		{"450.0", 450, false},
		{1.5, 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{nil, 0, true},
		{true, 0, true},
		{[]any{1}, 0, true},
		{int64(math.MaxInt32), math.MaxInt32, false},
		{int64(-math.MaxInt32), -math.MaxInt32, false},
		{int64(1 << 40), 0, true},
		{int64(-1 << 40), 0, true},
		{uint64(1 << 40), 0, true},
		{1e19, 0, true},
		{-1e19, 0, true},
		{"99999999999", 0, true},
		{"99999999999999999999", 0, true},
		{json.Number("1e12"), 0, true},
	}

	for _, tt := range tests {
		got, err := toInt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("toInt(%#v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("toInt(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToAmount(t *testing.T) {
	tests := map[string]int{
		"¥1,230":    1230,
		"￥12,340":   12340,
		" 110 ":     110,
		"1,000,000": 1000000,
	}
	for in, want := range tests {
		got, err := toAmount(in)
		if err != nil || got != want {
			t.Errorf("toAmount(%q) = (%d, %v), want %d", in, got, err, want)
		}
	}
}

func TestToTiming(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{".12", ".12"},
		{"F.01", "F.01"},
		{json.Number("0.05"), "0.05"},
		{0.17, "0.17"},
	}
	for _, tt := range tests {
		got, err := toTiming(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("toTiming(%#v) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := toTiming(nil); err == nil {
		t.Error("toTiming(nil) should fail")
	}
}
