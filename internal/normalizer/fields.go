package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	errMissing    = errors.New("缺失")
	errNotInteger = errors.New("不是整数")
	errNotString  = errors.New("不是字符串")
	errOutOfRange = errors.New("超出整数范围")
)

// maxIntValue 整数字段的绝对值上限，有符号、无符号与浮点输入共用
const maxIntValue = math.MaxInt32

// toInt 接受各整数类型、整值浮点数、json.Number 与十进制数字字符串；布尔值、小数与超出范围的值一律拒绝
func toInt(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, errMissing
	case bool:
		return 0, errNotInteger
	case int:
		return boundedInt(int64(t))
	case int8, int16, int32, int64:
		return boundedInt(reflect.ValueOf(t).Int())
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(t).Uint()
		if u > maxIntValue {
			return 0, errOutOfRange
		}
		return int(u), nil
	case float32:
		return toInt(float64(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t != math.Trunc(t) {
			return 0, errNotInteger
		}
		if math.Abs(t) > maxIntValue {
			return 0, errOutOfRange
		}
		return int(t), nil
	case json.Number:
		return parseIntString(t.String())
	case string:
		return parseIntString(t)
	}
	return 0, fmt.Errorf("%w: %T", errNotInteger, v)
}

func boundedInt(n int64) (int, error) {
	if n > maxIntValue || n < -maxIntValue {
		return 0, errOutOfRange
	}
	return int(n), nil
}

func parseIntString(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMissing
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return boundedInt(n)
	}
	// 上游有时把整数写成 "180.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotInteger
	}
	return toInt(f)
}

// toAmount 解析派彩金额，额外容忍 "¥1,230" 这类带货币符号与千分位的写法
func toAmount(v any) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "¥")
		s = strings.TrimPrefix(s, "￥")
		s = strings.ReplaceAll(s, ",", "")
		v = s
	}
	return toInt(v)
}

// toText 只接受字符串；数字作为名字等文本字段视为类型错误
func toText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", errMissing
	case string:
		return t, nil
	}
	return "", fmt.Errorf("%w: %T", errNotString, v)
}

// toOptionalText 可选文本：nil 视为未提供
func toOptionalText(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, err := toText(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// toTiming 起跑时机通常是 ".12" 这样的字符串，上游偶尔给出数字，按最短十进制形式输出
func toTiming(v any) (string, error) {
	switch t := v.(type) {
	case json.Number:
		return t.String(), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	}
	return toText(v)
}
