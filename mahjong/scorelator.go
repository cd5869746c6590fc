package mahjong

import (
	"errors"
	"math"
	"slices"
)

// ScoreItem 一项番数
type ScoreItem struct {
	Name    string
	Doubles int
}

// Score 胡牌总番数
type Score struct {
	Items []ScoreItem
	Total int
	max   int
}

// CalculateScore 牌型、花牌、字牌刻子番数之和
func CalculateScore(wh *WinningHand, rule *Rule) *Score {
	s := &Score{max: rule.MaxDoubles}
	for _, c := range wh.Combinations {
		s.add(c.Name, c.GetDoubles(rule))
	}
	for _, t := range wh.BonusTiles {
		s.add(t.Tile.Name(), t.Tile.BonusDoubles(wh.PrevailingWind, wh.SeatWind))
	}
	for _, m := range wh.Melds {
		if m.IsPongLike() {
			s.add(m.Meld.String(), m.Tile.PongDoubles(wh.PrevailingWind, wh.SeatWind))
		}
	}
	return s
}

func (s *Score) add(name string, doubles int) {
	s.Items = append(s.Items, ScoreItem{Name: name, Doubles: doubles})
	s.Total += doubles
}

// maxShift 2^62以内不会溢出int64
const maxShift = 62

// Points 底分*2^番数，番数封顶
func (s *Score) Points(base int64) int64 {
	doubles := max(s.Total, 0)
	if s.max > 0 {
		doubles = min(doubles, s.max)
	}
	return base << min(doubles, maxShift)
}

// Scorelator 结算：按胡牌方式算出输赢，再按算分方式限制在玩家的分数内
type Scorelator struct {
	scoreType ScoreType
	base      int64
}

func NewScorelator(scoreType ScoreType, base int64) *Scorelator {
	return &Scorelator{scoreType: scoreType, base: base}
}

// Settle 每个座位的输赢，balances为结算前各座位的分数
func (s *Scorelator) Settle(wh *WinningHand, score *Score, balances []int64) []int64 {
	return s.Limit(balances, payments(wh, score.Points(s.base)))
}

// payments 自摸三家都付，点炮只有放炮者付
func payments(wh *WinningHand, points int64) []int64 {
	deltas := make([]int64, NP4)
	payers := []Wind{wh.From}
	if wh.Type == WinTypeSelfDraw || !wh.From.IsValid() {
		payers = OrderedSeatsFrom(wh.SeatWind)[1:]
	}
	for _, w := range payers {
		deltas[w] -= points
		deltas[wh.SeatWind] += points
	}
	return deltas
}

// Limit 按算分方式调整输赢，参数不合法时原样返回
func (s *Scorelator) Limit(balances, deltas []int64) []int64 {
	if err := checkStakes(balances, deltas); err != nil {
		return slices.Clone(deltas)
	}
	res := slices.Clone(deltas)
	switch s.scoreType {
	case ScoreTypeMinScore:
		res = limitToStake(balances, deltas)
	case ScoreTypePositive:
		// 输家最多输光自己的分，超出部分由系统支出
		for i, d := range deltas {
			res[i] = max(d, -balances[i])
		}
	case ScoreTypeJustWin:
		for i, d := range deltas {
			res[i] = max(d, 0)
		}
	}
	return res
}

// limitToStake 每对赢家和输家之间最多转移双方分数和输赢中的最小值，
// 总赢分与总输分取小者后各自按比例缩放
func limitToStake(balances, deltas []int64) []int64 {
	n := len(deltas)
	res := make([]int64, n)
	var winners, losers []int
	for i, d := range deltas {
		switch {
		case d == 0 || balances[i] == 0:
		case d > 0:
			winners = append(winners, i)
		default:
			losers = append(losers, i)
		}
	}
	if len(winners) == 0 || len(losers) == 0 {
		return res
	}

	gain := make([]int64, n)
	loss := make([]int64, n)
	for _, w := range winners {
		for _, l := range losers {
			pair := min(balances[w], deltas[w], balances[l], -deltas[l])
			gain[w] += pair
			loss[l] += pair
		}
	}
	var won, lost int64
	for _, w := range winners {
		gain[w] = min(gain[w], deltas[w])
		won += gain[w]
	}
	for _, l := range losers {
		loss[l] = min(loss[l], balances[l], -deltas[l])
		lost += loss[l]
	}

	total := min(won, lost)
	for _, w := range winners {
		res[w] = scale(gain[w], total, won)
	}
	for _, l := range losers {
		res[l] = -scale(loss[l], total, lost)
	}
	return res
}

func scale(v, num, den int64) int64 {
	return int64(math.Round(float64(v) * float64(num) / float64(den)))
}

func checkStakes(balances, deltas []int64) error {
	if len(balances) != len(deltas) {
		return errors.New("balances and deltas differ in length")
	}
	if slices.ContainsFunc(balances, func(v int64) bool { return v < 0 }) {
		return errors.New("balances must not be negative")
	}
	var sum int64
	for _, v := range deltas {
		sum += v
	}
	if sum != 0 {
		return errors.New("deltas must sum to 0")
	}
	return nil
}
