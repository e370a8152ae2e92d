package model

// Stadium 竞艇场
type Stadium struct {
	Number int    `json:"stadium_number"`
	Name   string `json:"name"`
}

const (
	MinStadiumNumber = 1
	MaxStadiumNumber = 24
	MinRaceNumber    = 1
	MaxRaceNumber    = 12
	MaxBoatNumber    = 6
)

// Stadiums 全国 24 场，按场地编号排列
var Stadiums = []Stadium{
	{1, "桐生"}, {2, "戸田"}, {3, "江戸川"}, {4, "平和島"},
	{5, "多摩川"}, {6, "浜名湖"}, {7, "蒲郡"}, {8, "常滑"},
	{9, "津"}, {10, "三国"}, {11, "びわこ"}, {12, "住之江"},
	{13, "尼崎"}, {14, "鳴門"}, {15, "丸亀"}, {16, "児島"},
	{17, "宮島"}, {18, "徳山"}, {19, "下関"}, {20, "若松"},
	{21, "芦屋"}, {22, "福岡"}, {23, "唐津"}, {24, "大村"},
}

// LookupStadium 按编号查场地
func LookupStadium(number int) (Stadium, bool) {
	if number < MinStadiumNumber || number > len(Stadiums) {
		return Stadium{}, false
	}
	return Stadiums[number-1], true
}
