package model

import (
	"time"

	"gorm.io/datatypes"
)

// 访问结果分类
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeMalformed = "malformed"
	OutcomeUpstream  = "upstream_error"
	OutcomeInternal  = "internal_error"
)

// AccessLog 接口访问记录，只记录请求参数与结果分类，不保存比赛数据
type AccessLog struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	LogUUID       string         `gorm:"column:log_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	RequestID     string         `gorm:"column:request_id;type:varchar(64);index;comment:请求ID"`
	DataKind      string         `gorm:"column:data_kind;type:varchar(16);not null;comment:数据种类"`
	RaceDate      time.Time      `gorm:"column:race_date;type:date;not null;comment:比赛日"`
	StadiumNumber int            `gorm:"column:stadium_number;type:int;default:0;comment:场地编号"`
	RaceNumber    int            `gorm:"column:race_number;type:int;default:0;comment:场次"`
	Outcome       string         `gorm:"column:outcome;type:varchar(16);not null;comment:结果分类"`
	Detail        datatypes.JSON `gorm:"column:detail;type:jsonb;comment:错误详情"`
	DurationMs    int64          `gorm:"column:duration_ms;type:bigint;default:0;comment:耗时(毫秒)"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
}

func (AccessLog) TableName() string { return "access_logs" }
