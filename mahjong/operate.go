package mahjong

import (
	"fmt"
	"slices"
)

// ActionKind 操作类型
type ActionKind int

const (
	ActionNone                    ActionKind = iota - 1
	ActionDrawTile                           // 摸牌
	ActionRevealBonusTileThenDraw            // 亮花补牌
	ActionDiscardTile                        // 出牌
	ActionFormMeld                           // 吃碰杠
	ActionMahjong                            // 点炮胡
	ActionSelfDrawMahjong                    // 自摸
	ActionSkipWindow                         // 过
	ActionCloseWindow                        // 关闭抢牌窗口
	ActionNextHand                           // 下一局
)

var ActionNames = map[ActionKind]string{
	ActionDrawTile:                "Draw",
	ActionRevealBonusTileThenDraw: "Flower",
	ActionDiscardTile:             "Discard",
	ActionFormMeld:                "Meld",
	ActionMahjong:                 "Win",
	ActionSelfDrawMahjong:         "SelfDraw",
	ActionSkipWindow:              "Pass",
	ActionCloseWindow:             "Close",
	ActionNextHand:                "NextHand",
}

func (k ActionKind) String() string {
	if name, ok := ActionNames[k]; ok {
		return name
	}
	return "None"
}

// Action 玩家或系统提交的操作
type Action struct {
	Kind ActionKind
	Seat Wind          // 系统操作为SeatNull
	Tile *TileInstance // 亮出的花、打出的牌或抢的那张牌
	Meld *MeldInstance // 吃碰杠组成的面子，包含抢的那张牌
}

func NewDrawTileAction(seat Wind) *Action {
	return &Action{Kind: ActionDrawTile, Seat: seat}
}

func NewRevealBonusTileAction(seat Wind, bonus *TileInstance) *Action {
	return &Action{Kind: ActionRevealBonusTileThenDraw, Seat: seat, Tile: bonus}
}

func NewDiscardAction(seat Wind, tile *TileInstance) *Action {
	return &Action{Kind: ActionDiscardTile, Seat: seat, Tile: tile}
}

func NewFormMeldAction(seat Wind, meld *MeldInstance, discarded *TileInstance) *Action {
	return &Action{Kind: ActionFormMeld, Seat: seat, Tile: discarded, Meld: meld}
}

func NewMahjongAction(seat Wind, discarded *TileInstance) *Action {
	return &Action{Kind: ActionMahjong, Seat: seat, Tile: discarded}
}

func NewSelfDrawMahjongAction(seat Wind) *Action {
	return &Action{Kind: ActionSelfDrawMahjong, Seat: seat}
}

func NewSkipAction(seat Wind) *Action {
	return &Action{Kind: ActionSkipWindow, Seat: seat}
}

func NewCloseWindowAction() *Action {
	return &Action{Kind: ActionCloseWindow, Seat: SeatNull}
}

func NewNextHandAction(seat Wind) *Action {
	return &Action{Kind: ActionNextHand, Seat: seat}
}

// Priority 抢牌优先级：胡 > 碰/杠 > 吃 > 过，其他操作为-1
func (a *Action) Priority() int {
	switch a.Kind {
	case ActionMahjong:
		return 3
	case ActionFormMeld:
		if a.Meld != nil && a.Meld.Kind == MeldChow {
			return 1
		}
		return 2
	case ActionSkipWindow:
		return 0
	default:
		return -1
	}
}

// IsWindowAction 抢牌窗口内可提交的操作
func (a *Action) IsWindowAction() bool {
	switch a.Kind {
	case ActionFormMeld, ActionMahjong, ActionSkipWindow, ActionCloseWindow:
		return true
	default:
		return false
	}
}

func (a *Action) String() string {
	s := fmt.Sprintf("%s(%s", a.Kind, a.Seat)
	if a.Tile != nil {
		s += " " + a.Tile.String()
	}
	if a.Meld != nil {
		s += " " + a.Meld.String()
	}
	return s + ")"
}

// validate 检查操作内容本身是否合法，阶段和座位由Phase检查
func (a *Action) validate(h *Hand) error {
	seat := h.Seat(a.Seat)
	switch a.Kind {
	case ActionDrawTile, ActionSkipWindow, ActionCloseWindow, ActionNextHand:
		return nil
	case ActionRevealBonusTileThenDraw:
		if a.Tile == nil || !a.Tile.Tile.IsBonus() {
			return ErrInvalidAction.WithContext("reason", "not a bonus tile")
		}
		if !seat.HasTile(a.Tile) {
			return ErrTileNotInHand.WithContext("tile", a.Tile.String())
		}
		return nil
	case ActionDiscardTile:
		if a.Tile == nil || !seat.HasTile(a.Tile) {
			return ErrTileNotInHand
		}
		if a.Tile.Tile.IsBonus() || seat.HasBonusTileInHand() {
			return ErrBonusTileNotRevealed.WithContext("seat", a.Seat.String())
		}
		return nil
	case ActionFormMeld:
		return a.validateMeld(h, seat)
	case ActionMahjong:
		if a.Tile == nil || a.Tile != h.TopDiscard() {
			return ErrWrongTile
		}
		if GetWinningHand(seat, seat.HandTiles(), a.Tile, WinTypeDiscard) == nil {
			return ErrPatternUnsatisfied.WithContext("seat", a.Seat.String())
		}
		return nil
	case ActionSelfDrawMahjong:
		pre, drawn := splitLatestDrawn(seat, h.latestDrawn)
		if GetWinningHand(seat, pre, drawn, WinTypeSelfDraw) == nil {
			return ErrPatternUnsatisfied.WithContext("seat", a.Seat.String())
		}
		return nil
	default:
		return ErrInvalidAction
	}
}

func (a *Action) validateMeld(h *Hand, seat *PlayData) error {
	if a.Tile == nil || a.Tile != h.TopDiscard() {
		return ErrWrongTile
	}
	m := a.Meld
	if m == nil || m.Kind == MeldEyePair || !m.Meld.IsValid() || len(m.Tiles) != m.Kind.Size() || !m.Contains(a.Tile) {
		return ErrPatternUnsatisfied
	}
	want := m.Meld.Tiles()
	got := tileValues(m.Tiles)
	slices.Sort(want)
	slices.Sort(got)
	if !slices.Equal(want, got) {
		return ErrPatternUnsatisfied.WithContext("meld", m.String())
	}
	others := removeInstances(m.Tiles, []*TileInstance{a.Tile})
	if len(others) != len(m.Tiles)-1 {
		return ErrPatternUnsatisfied.WithContext("meld", m.String())
	}
	for _, t := range others {
		if !seat.HasTile(t) {
			return ErrTileNotInHand.WithContext("tile", t.String())
		}
	}
	return nil
}

// execute 修改牌局，调用前已通过validate
func (a *Action) execute(h *Hand) error {
	seat := h.Seat(a.Seat)
	switch a.Kind {
	case ActionDrawTile:
		h.drawTile(seat)
	case ActionRevealBonusTileThenDraw:
		if err := seat.revealBonusTile(a.Tile); err != nil {
			return err
		}
		h.drawReplacement(seat)
	case ActionDiscardTile:
		return seat.discard(a.Tile)
	case ActionFormMeld:
		others := removeInstances(a.Meld.Tiles, []*TileInstance{a.Tile})
		if err := seat.removeHandTiles(others...); err != nil {
			return err
		}
		h.popDiscard()
		meld := &MeldInstance{Meld: a.Meld.Meld, Tiles: slices.Clone(a.Meld.Tiles)}
		seat.addMeld(meld)
	case ActionMahjong:
		wh := GetWinningHand(seat, seat.HandTiles(), a.Tile, WinTypeDiscard)
		if wh == nil {
			return ErrPatternUnsatisfied
		}
		wh.From = h.discarder()
		h.popDiscard()
		h.declareWin(seat, wh)
	case ActionSelfDrawMahjong:
		pre, drawn := splitLatestDrawn(seat, h.latestDrawn)
		wh := GetWinningHand(seat, pre, drawn, WinTypeSelfDraw)
		if wh == nil {
			return ErrPatternUnsatisfied
		}
		h.declareWin(seat, wh)
	case ActionNextHand:
		h.finish()
	}
	return nil
}

// nextPhase 在抢牌窗口中胜出后进入的阶段
func (a *Action) nextPhase(w *WindowPhase) Phase {
	switch a.Kind {
	case ActionFormMeld:
		if a.Meld.Kind == MeldKong {
			return newToDrawPhase(w.hand, a.Seat)
		}
		return newClaimedToDiscardPhase(w.hand, a.Seat)
	case ActionMahjong:
		return newEndOfHandPhase(w.hand, a.Seat)
	default:
		return newToDrawPhase(w.hand, w.seat.Next())
	}
}

// splitLatestDrawn 自摸时把最后摸到的牌从手牌中分出来
func splitLatestDrawn(seat *PlayData, drawn *TileInstance) ([]*TileInstance, *TileInstance) {
	if drawn == nil || !seat.HasTile(drawn) {
		return seat.HandTiles(), nil
	}
	return removeInstances(seat.handTiles, []*TileInstance{drawn}), drawn
}
