// Package normalizer 把爬虫返回的松散嵌套结构转换为规范化的比赛结果记录。
//
// 原始结构为 场地 -> 场次 -> 记录，两层的键都可能是整数或字符串，
// 所有键在查找与重建映射前统一经过 canonicalKey 处理。
// 任何一处格式错误都会使整条记录失败，不返回部分结果。
package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"BoatraceAPI/internal/model"
)

const (
	sectionRecord    = "record"
	sectionResults   = "results"
	sectionStartInfo = "start_info"
)

// Normalize 在 raw 中定位 (stadiumID, raceNumber) 对应的记录并转换为 RaceResultRecord。
// 找不到时返回 *NotFoundError，记录格式不符时返回 *MalformedRecordError
func Normalize(raw model.RawMap, stadiumID, raceNumber int, raceDate model.Date) (*model.RaceResultRecord, error) {
	stadiumKey := strconv.Itoa(stadiumID)
	raceKey := strconv.Itoa(raceNumber)

	racesVal, ok := lookup(raw, stadiumKey)
	if !ok {
		return nil, &NotFoundError{StadiumID: stadiumID, RaceNumber: raceNumber}
	}
	races, ok := asRawMap(racesVal)
	if !ok {
		return nil, malformed("stadium", stadiumKey, "", "场地层不是映射")
	}

	recordVal, ok := lookup(races, raceKey)
	if !ok {
		return nil, &NotFoundError{StadiumID: stadiumID, RaceNumber: raceNumber}
	}
	record, ok := asRawMap(recordVal)
	if !ok {
		return nil, malformed("race", raceKey, "", "场次层不是映射")
	}

	identity := model.RaceIdentity{
		RaceDate:   raceDate,
		StadiumID:  stadiumID,
		RaceNumber: raceNumber,
	}
	return buildRecord(record, identity)
}

func buildRecord(record model.RawMap, identity model.RaceIdentity) (*model.RaceResultRecord, error) {
	if err := checkIdentityField(record, "race_stadium_number", identity.StadiumID); err != nil {
		return nil, err
	}
	if err := checkIdentityField(record, "race_number", identity.RaceNumber); err != nil {
		return nil, err
	}

	results, err := buildResults(record)
	if err != nil {
		return nil, err
	}

	out := &model.RaceResultRecord{
		RaceIdentity: identity,
		Results:      results,
	}

	if v, ok := record.Field("start_info"); ok && v != nil {
		startInfo, err := buildStartInfo(v)
		if err != nil {
			return nil, err
		}
		out.StartInfo = startInfo
	}

	for _, bet := range model.BetTypes {
		field := bet.PayoutField()
		v, _ := record.Field(field)
		table, err := BuildPayoutTable(field, v)
		if err != nil {
			return nil, err
		}
		out.SetPayouts(bet, table)
	}

	if v, ok := record.Field("winning_technique"); ok {
		technique, err := toOptionalText(v)
		if err != nil {
			return nil, malformed(sectionRecord, "", "winning_technique", err.Error())
		}
		out.WinningTechnique = technique
	}

	return out, nil
}

// checkIdentityField 记录自带的场地/场次编号若存在，必须与查询键一致
func checkIdentityField(record model.RawMap, field string, want int) error {
	v, ok := record.Field(field)
	if !ok || v == nil {
		return nil
	}
	got, err := toInt(v)
	if err != nil {
		return malformed(sectionRecord, "", field, err.Error())
	}
	if got != want {
		return malformed(sectionRecord, "", field, "与查询值不一致: %d != %d", got, want)
	}
	return nil
}

func buildResults(record model.RawMap) (*model.OrderedMap[model.BoatResult], error) {
	v, ok := record.Field(sectionResults)
	if !ok || v == nil {
		return nil, malformed(sectionResults, "", "", "缺失")
	}
	entries, ok := asRawMap(v)
	if !ok {
		return nil, malformed(sectionResults, "", "", "不是映射")
	}
	if len(entries) == 0 {
		return nil, malformed(sectionResults, "", "", "为空")
	}

	results := model.NewOrderedMap[model.BoatResult]()
	for _, e := range entries {
		key, ok := canonicalKey(e.Key)
		if !ok {
			return nil, malformed(sectionResults, keyString(e.Key), "", "非法的着顺键")
		}
		if results.Has(key) {
			return nil, malformed(sectionResults, key, "", "着顺键重复")
		}
		boat, err := buildBoatResult(key, e.Value)
		if err != nil {
			return nil, err
		}
		results.Set(key, boat)
	}
	return results, nil
}

func buildBoatResult(key string, v any) (model.BoatResult, error) {
	entry, ok := asRawMap(v)
	if !ok {
		return model.BoatResult{}, malformed(sectionResults, key, "", "不是映射")
	}

	var boat model.BoatResult

	pos, _ := entry.Field("position")
	position, err := toInt(pos)
	if err != nil {
		return boat, malformed(sectionResults, key, "position", err.Error())
	}
	if position < 1 {
		return boat, malformed(sectionResults, key, "position", "必须大于等于1: %d", position)
	}
	if strconv.Itoa(position) != key {
		return boat, malformed(sectionResults, key, "position", "与着顺键不一致: %d", position)
	}

	bn, _ := entry.Field("boat_number")
	boatNumber, err := toInt(bn)
	if err != nil {
		return boat, malformed(sectionResults, key, "boat_number", err.Error())
	}
	if boatNumber < 1 || boatNumber > model.MaxBoatNumber {
		return boat, malformed(sectionResults, key, "boat_number", "超出范围: %d", boatNumber)
	}

	rn, _ := entry.Field("racer_name")
	racerName, err := toText(rn)
	if err != nil {
		return boat, malformed(sectionResults, key, "racer_name", err.Error())
	}
	if strings.TrimSpace(racerName) == "" {
		return boat, malformed(sectionResults, key, "racer_name", "为空")
	}

	rt, _ := entry.Field("race_time")
	raceTime, err := toOptionalText(rt)
	if err != nil {
		return boat, malformed(sectionResults, key, "race_time", err.Error())
	}

	boat.Position = position
	boat.BoatNumber = boatNumber
	boat.RacerName = racerName
	boat.RaceTime = raceTime
	return boat, nil
}

func buildStartInfo(v any) (*model.OrderedMap[model.StartInfo], error) {
	entries, ok := asRawMap(v)
	if !ok {
		return nil, malformed(sectionStartInfo, "", "", "不是映射")
	}

	infos := model.NewOrderedMap[model.StartInfo]()
	for _, e := range entries {
		key, ok := canonicalKey(e.Key)
		if !ok {
			return nil, malformed(sectionStartInfo, keyString(e.Key), "", "非法的艇番键")
		}
		if infos.Has(key) {
			return nil, malformed(sectionStartInfo, key, "", "艇番键重复")
		}
		entry, ok := asRawMap(e.Value)
		if !ok {
			return nil, malformed(sectionStartInfo, key, "", "不是映射")
		}

		t, _ := entry.Field("timing")
		timing, err := toTiming(t)
		if err != nil {
			return nil, malformed(sectionStartInfo, key, "timing", err.Error())
		}
		sn, _ := entry.Field("special_note")
		note, err := toOptionalText(sn)
		if err != nil {
			return nil, malformed(sectionStartInfo, key, "special_note", err.Error())
		}
		infos.Set(key, model.StartInfo{Timing: timing, SpecialNote: note})
	}
	return infos, nil
}

func keyString(k any) string {
	return fmt.Sprint(k)
}
