package normalizer

import (
	"strings"

	"BoatraceAPI/internal/model"
)

// BuildPayoutTable 把一个券种的原始派彩映射转换为规范化派彩表。
// raw 为 nil（字段缺失或为 null）时返回 nil；空映射返回空表，二者不合并
func BuildPayoutTable(section string, raw any) (*model.PayoutTable, error) {
	if raw == nil {
		return nil, nil
	}
	entries, ok := asRawMap(raw)
	if !ok {
		return nil, malformed(section, "", "", "不是映射")
	}

	table := model.NewOrderedMap[model.PayoutEntry]()
	for _, e := range entries {
		key, ok := canonicalKey(e.Key)
		if !ok {
			return nil, malformed(section, keyString(e.Key), "", "非法的组合键")
		}
		if table.Has(key) {
			return nil, malformed(section, key, "", "组合键重复")
		}
		entry, err := buildPayoutEntry(section, key, e.Value)
		if err != nil {
			return nil, err
		}
		table.Set(key, entry)
	}
	return table, nil
}

func buildPayoutEntry(section, key string, v any) (model.PayoutEntry, error) {
	fields, ok := asRawMap(v)
	if !ok {
		return model.PayoutEntry{}, malformed(section, key, "", "不是映射")
	}

	entry := model.PayoutEntry{Combination: key}

	if c, ok := fields.Field("combination"); ok && c != nil {
		combination, err := toText(c)
		if err != nil {
			return entry, malformed(section, key, "combination", err.Error())
		}
		if strings.TrimSpace(combination) == "" {
			return entry, malformed(section, key, "combination", "为空")
		}
		entry.Combination = combination
	}

	p, _ := fields.Field("payout")
	payout, err := toAmount(p)
	if err != nil {
		return entry, malformed(section, key, "payout", err.Error())
	}
	if payout < 0 {
		return entry, malformed(section, key, "payout", "不能为负数: %d", payout)
	}
	entry.Payout = payout

	if pop, ok := fields.Field("popularity"); ok && pop != nil {
		popularity, err := toInt(pop)
		if err != nil {
			return entry, malformed(section, key, "popularity", err.Error())
		}
		if popularity < 1 {
			return entry, malformed(section, key, "popularity", "必须为正整数: %d", popularity)
		}
		entry.Popularity = &popularity
	}

	return entry, nil
}
