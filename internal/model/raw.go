package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawEntry 原始结构中的一项。Key 可能是整数也可能是字符串（爬虫输出不统一）
type RawEntry struct {
	Key   any
	Value any
}

// RawMap 爬虫返回的松散映射，按原始顺序保存各项
// 值可能是 RawMap、[]any、string、json.Number、float64、int、bool 或 nil
type RawMap []RawEntry

// Field 按字符串字段名精确取值，第二个返回值表示字段是否出现
func (m RawMap) Field(name string) (any, bool) {
	for _, e := range m {
		if k, ok := e.Key.(string); ok && k == name {
			return e.Value, true
		}
	}
	return nil, false
}

// UnmarshalJSON 逐 token 解码，保留对象键的出现顺序；数字保留为 json.Number
func (m *RawMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeRawValue(dec)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*m = nil
	case RawMap:
		*m = t
	default:
		return fmt.Errorf("原始数据顶层不是对象: %T", v)
	}
	return nil
}

func decodeRawValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string / json.Number / bool / nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := RawMap{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("非法的对象键: %v", keyTok)
			}
			val, err := decodeRawValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, RawEntry{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeRawValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("意外的分隔符: %v", delim)
}
