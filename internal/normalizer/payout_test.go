package normalizer_test

import (
	"errors"
	"reflect"
	"testing"

	"BoatraceAPI/internal/model"
	"BoatraceAPI/internal/normalizer"
)

func TestBuildPayoutTable_AbsentStaysAbsent(t *testing.T) {
	table, err := normalizer.BuildPayoutTable("win_payouts", nil)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if table != nil {
		t.Errorf("table = %v, want nil", table)
	}
}

func TestBuildPayoutTable_EmptyStaysEmpty(t *testing.T) {
	table, err := normalizer.BuildPayoutTable("win_payouts", model.RawMap{})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if table == nil {
		t.Fatal("table = nil, want empty table")
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestBuildPayoutTable_Entries(t *testing.T) {
	raw := model.RawMap{
		{Key: "1-2", Value: model.RawMap{{Key: "combination", Value: "1-2"}, {Key: "payout", Value: 1230}, {Key: "popularity", Value: 4}}},
		{Key: "2-1", Value: model.RawMap{{Key: "payout", Value: "¥560"}, {Key: "popularity", Value: nil}}},
		{Key: 3, Value: model.RawMap{{Key: "combination", Value: "3"}, {Key: "payout", Value: 0}}},
	}

	table, err := normalizer.BuildPayoutTable("exacta_payouts", raw)
	if err != nil {
		t.Fatalf("error = %v", err)
	}

	if got := table.Keys(); !reflect.DeepEqual(got, []string{"1-2", "2-1", "3"}) {
		t.Errorf("keys = %v", got)
	}

	first, _ := table.Get("1-2")
	if first.Payout != 1230 || first.Popularity == nil || *first.Popularity != 4 {
		t.Errorf("entry 1-2 = %+v", first)
	}

	// combination 缺失时取组合键
	second, _ := table.Get("2-1")
	if second.Combination != "2-1" || second.Payout != 560 || second.Popularity != nil {
		t.Errorf("entry 2-1 = %+v", second)
	}

	third, _ := table.Get("3")
	if third.Payout != 0 {
		t.Errorf("entry 3 payout = %d, want 0", third.Payout)
	}
}

func TestBuildPayoutTable_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		key   string
		field string
	}{
		{"not a mapping", []any{"2", 180}, "", ""},
		{"entry not a mapping", model.RawMap{{Key: "2", Value: 180}}, "2", ""},
		{"payout missing", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "combination", Value: "2"}}}}, "2", "payout"},
		{"payout negative", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "payout", Value: -10}}}}, "2", "payout"},
		{"payout fractional", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "payout", Value: 180.5}}}}, "2", "payout"},
		{"popularity zero", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "payout", Value: 180}, {Key: "popularity", Value: 0}}}}, "2", "popularity"},
		{"popularity text", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "payout", Value: 180}, {Key: "popularity", Value: "人気"}}}}, "2", "popularity"},
		{"combination not text", model.RawMap{{Key: "2", Value: model.RawMap{{Key: "combination", Value: 2}, {Key: "payout", Value: 180}}}}, "2", "combination"},
		{"duplicate key", model.RawMap{
			{Key: 2, Value: model.RawMap{{Key: "payout", Value: 180}}},
			{Key: "2", Value: model.RawMap{{Key: "payout", Value: 190}}},
		}, "2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := normalizer.BuildPayoutTable("win_payouts", tt.raw)
			if table != nil {
				t.Errorf("table = %v, want nil", table)
			}
			var me *normalizer.MalformedRecordError
			if !errors.As(err, &me) {
				t.Fatalf("error = %v, want *MalformedRecordError", err)
			}
			if me.Section != "win_payouts" || me.Key != tt.key || me.Field != tt.field {
				t.Errorf("location = %s[%s].%s, want win_payouts[%s].%s", me.Section, me.Key, me.Field, tt.key, tt.field)
			}
		})
	}
}
