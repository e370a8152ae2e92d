package model

// RaceDataKind 上游可提供的单场数据种类，同时也是爬虫接口的路径段
type RaceDataKind string

const (
	KindPrograms RaceDataKind = "programs" // 出走表
	KindOdds     RaceDataKind = "odds"     // 赔率
	KindPreviews RaceDataKind = "previews" // 直前情报
	KindResults  RaceDataKind = "results"  // 结果
	KindStadiums RaceDataKind = "stadiums" // 当日开催场一览
)

// RaceQuery 已通过校验的单场查询参数
type RaceQuery struct {
	Date       Date
	StadiumID  int
	RaceNumber int
}
