package mahjong

import (
	"slices"
)

// WinningHand 胡牌时的快照，生成后不再修改
type WinningHand struct {
	PrevailingWind Wind
	SeatWind       Wind
	From           Wind // 点炮的座位，自摸为SeatNull
	PreWinHand     []*TileInstance
	PreWinMelds    []*MeldInstance
	BonusTiles     []*TileInstance
	WinningTile    *TileInstance
	Type           WinType
	Melds          []*MeldInstance // 最终的面子分解
	Combinations   []*Combination
}

// GetWinningHand 手牌加上extra能否胡牌，不能胡返回nil
func GetWinningHand(seat *PlayData, hand []*TileInstance, extra *TileInstance, winType WinType) *WinningHand {
	pool := slices.Clone(hand)
	if extra != nil {
		pool = append(pool, extra)
	}
	existing := seat.Melds()

	combinations := matchingCombinations(pool, existing, func(c *Combination) bool {
		return isProperSequenceHand(seat, c, hand, winType)
	})
	if len(combinations) == 0 {
		return nil
	}

	prevailing := WindEast
	if seat.hand != nil {
		prevailing = seat.hand.prevailingWind
	}
	return &WinningHand{
		PrevailingWind: prevailing,
		SeatWind:       seat.wind,
		From:           SeatNull,
		PreWinHand:     slices.Clone(hand),
		PreWinMelds:    existing,
		BonusTiles:     seat.BonusTiles(),
		WinningTile:    extra,
		Type:           winType,
		Melds:          slices.Clone(combinations[0].Melds),
		Combinations:   combinations,
	}
}

// isProperSequenceHand 平胡要求：将不能是有番的字牌，且自摸、已有4组面子或听两种以上的牌
func isProperSequenceHand(seat *PlayData, c *Combination, preWinHand []*TileInstance, winType WinType) bool {
	prevailing := WindEast
	if seat.hand != nil {
		prevailing = seat.hand.prevailingWind
	}
	for _, m := range c.Melds {
		if m.Kind == MeldEyePair && m.Tile.PongDoubles(prevailing, seat.wind) > 0 {
			return false
		}
	}

	if winType == WinTypeSelfDraw || len(seat.melds) == 4 {
		return true
	}

	waits := 0
	for _, t := range NumberedTiles() {
		wait := &TileInstance{ID: -1, Tile: t}
		if SequenceHand.FirstMatch(append(slices.Clone(preWinHand), wait), seat.Melds()) != nil {
			waits++
			if waits >= 2 {
				return true
			}
		}
	}
	return false
}
