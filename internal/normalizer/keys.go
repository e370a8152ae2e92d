package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"BoatraceAPI/internal/model"
)

// canonicalKey 把整数或字符串键统一为字符串。
// 能按十进制整数解析的键输出为无前导零的整数（3、"3"、"03"、3.0 都得到 "3"），其余字符串去掉首尾空白原样保留
func canonicalKey(k any) (string, bool) {
	switch v := k.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		return s, true
	case json.Number:
		return canonicalKey(v.String())
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), true
	case float32:
		return canonicalKey(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) >= 1<<63 {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	}
	return "", false
}

// lookup 在一层映射中按规范化键查找，返回第一个匹配项
func lookup(m model.RawMap, key string) (any, bool) {
	for _, e := range m {
		if k, ok := canonicalKey(e.Key); ok && k == key {
			return e.Value, true
		}
	}
	return nil, false
}

// asRawMap 把一层原始值视为映射。
// RawMap 保持原顺序；普通 Go map 没有顺序，按规范化键排序（数字键按数值）以保证结果确定
func asRawMap(v any) (model.RawMap, bool) {
	switch t := v.(type) {
	case model.RawMap:
		return t, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(model.RawMap, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out = append(out, model.RawEntry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyLess(out[i].Key, out[j].Key)
	})
	return out, true
}

func keyLess(a, b any) bool {
	ka, _ := canonicalKey(a)
	kb, _ := canonicalKey(b)
	na, errA := strconv.ParseInt(ka, 10, 64)
	nb, errB := strconv.ParseInt(kb, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	if ka == kb {
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
	return ka < kb
}
