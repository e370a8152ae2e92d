package model

// RaceIdentity 标识一场比赛（日期 + 场地 + 场次）
type RaceIdentity struct {
	RaceDate   Date `json:"race_date"`
	StadiumID  int  `json:"race_stadium_number"`
	RaceNumber int  `json:"race_number"`
}

// BoatResult 单艇的着顺结果
type BoatResult struct {
	Position   int     `json:"position"`
	BoatNumber int     `json:"boat_number"` // 艇番 1-6
	RacerName  string  `json:"racer_name"`
	RaceTime   *string `json:"race_time,omitempty"` // 如 1'49"5，原样透传
}

// StartInfo 单艇的起跑信息
type StartInfo struct {
	Timing      string  `json:"timing"`
	SpecialNote *string `json:"special_note,omitempty"` // F / L 等
}

// PayoutEntry 单个组合的派彩
type PayoutEntry struct {
	Combination string `json:"combination"`
	Payout      int    `json:"payout"`
	Popularity  *int   `json:"popularity,omitempty"`
}

// PayoutTable 某一券种的派彩表：规范化组合键 -> 派彩
type PayoutTable = OrderedMap[PayoutEntry]

// BetType 券种
type BetType string

const (
	BetWin           BetType = "win"            // 単勝
	BetPlace         BetType = "place"          // 複勝
	BetExacta        BetType = "exacta"         // 2連単
	BetQuinella      BetType = "quinella"       // 2連複
	BetQuinellaPlace BetType = "quinella_place" // 拡連複
	BetTrifecta      BetType = "trifecta"       // 3連単
	BetTrio          BetType = "trio"           // 3連複
)

// BetTypes 派彩表的固定输出顺序
var BetTypes = []BetType{BetWin, BetPlace, BetExacta, BetQuinella, BetQuinellaPlace, BetTrifecta, BetTrio}

// PayoutField 券种在原始记录中的字段名，如 win_payouts
func (b BetType) PayoutField() string {
	return string(b) + "_payouts"
}

// RaceResultRecord 规范化后的单场比赛结果
// 可选字段为 nil 表示上游未提供，不会被填充为空结构
type RaceResultRecord struct {
	RaceIdentity
	Results *OrderedMap[BoatResult] `json:"results"`

	WinPayouts           *PayoutTable `json:"win_payouts,omitempty"`
	PlacePayouts         *PayoutTable `json:"place_payouts,omitempty"`
	ExactaPayouts        *PayoutTable `json:"exacta_payouts,omitempty"`
	QuinellaPayouts      *PayoutTable `json:"quinella_payouts,omitempty"`
	QuinellaPlacePayouts *PayoutTable `json:"quinella_place_payouts,omitempty"`
	TrifectaPayouts      *PayoutTable `json:"trifecta_payouts,omitempty"`
	TrioPayouts          *PayoutTable `json:"trio_payouts,omitempty"`

	WinningTechnique *string                `json:"winning_technique,omitempty"` // 決まり手
	StartInfo        *OrderedMap[StartInfo] `json:"start_info,omitempty"`
}

// Payouts 按券种取派彩表
func (r *RaceResultRecord) Payouts(b BetType) *PayoutTable {
	if slot := r.payoutSlot(b); slot != nil {
		return *slot
	}
	return nil
}

// SetPayouts 按券种写入派彩表，未知券种忽略
func (r *RaceResultRecord) SetPayouts(b BetType, table *PayoutTable) {
	if slot := r.payoutSlot(b); slot != nil {
		*slot = table
	}
}

func (r *RaceResultRecord) payoutSlot(b BetType) **PayoutTable {
	switch b {
	case BetWin:
		return &r.WinPayouts
	case BetPlace:
		return &r.PlacePayouts
	case BetExacta:
		return &r.ExactaPayouts
	case BetQuinella:
		return &r.QuinellaPayouts
	case BetQuinellaPlace:
		return &r.QuinellaPlacePayouts
	case BetTrifecta:
		return &r.TrifectaPayouts
	case BetTrio:
		return &r.TrioPayouts
	}
	return nil
}
