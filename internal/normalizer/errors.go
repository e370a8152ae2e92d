package normalizer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 原始数据中不存在请求的 (场地, 场次)
	ErrNotFound = errors.New("race result not found")
	// ErrMalformedRecord 定位到的记录不满足规范结构
	ErrMalformedRecord = errors.New("malformed race record")
)

// NotFoundError 携带查询键的未找到错误，errors.Is(err, ErrNotFound) 为真
type NotFoundError struct {
	StadiumID  int
	RaceNumber int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到比赛结果: 场地%d 第%dR", e.StadiumID, e.RaceNumber)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedRecordError 指出记录中出问题的位置
// Section 为 results / start_info / win_payouts 等段名，Key 为该段内的规范化键
type MalformedRecordError struct {
	Section string
	Key     string
	Field   string
	Reason  string
}

func (e *MalformedRecordError) Error() string {
	loc := e.Section
	if e.Key != "" {
		loc += "[" + e.Key + "]"
	}
	if e.Field != "" {
		loc += "." + e.Field
	}
	return fmt.Sprintf("比赛记录格式错误 %s: %s", loc, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func malformed(section, key, field, reason string, args ...any) *MalformedRecordError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &MalformedRecordError{Section: section, Key: key, Field: field, Reason: reason}
}
