package mahjong

import (
	"fmt"
	"slices"
)

// PhaseKind 牌局阶段
type PhaseKind int

const (
	PhasePostDraw  PhaseKind = iota // 开局补花
	PhaseToDiscard                  // 等待出牌
	PhaseWindow                     // 抢牌窗口
	PhaseToDraw                     // 摸牌
	PhaseEndOfHand                  // 结束
)

var phaseKindNames = []string{"PostDraw", "ToDiscard", "Window", "ToDraw", "EndOfHand"}

func (k PhaseKind) String() string {
	return phaseKindNames[k]
}

// Phase 牌局阶段，对外只读
type Phase interface {
	Name() string
	Kind() PhaseKind
	Seat() Wind

	onEnter()
	errorForAction(a *Action) error
	execute(a *Action) error
	isCompleted() bool
	nextPhase() Phase
}

type phase struct {
	hand *Hand
	seat Wind
}

func (p *phase) Seat() Wind { return p.seat }

func (p *phase) onEnter() {}

func (p *phase) checkSeat(a *Action) error {
	if a.Seat != p.seat {
		return ErrNotYourTurn.WithContext("seat", a.Seat.String())
	}
	return nil
}

// PostDrawPhase 开局按座位依次补花，有人补到花则再来一轮
type PostDrawPhase struct {
	phase
	round       int
	tilesToShow []*TileInstance
}

func newPostDrawPhase(h *Hand, seat Wind, round int) *PostDrawPhase {
	return &PostDrawPhase{phase: phase{hand: h, seat: seat}, round: round}
}

func (p *PostDrawPhase) Name() string    { return fmt.Sprintf("Post Draw (%d)", p.round+1) }
func (p *PostDrawPhase) Kind() PhaseKind { return PhasePostDraw }
func (p *PostDrawPhase) Round() int      { return p.round }

// TilesToShow 本轮需要亮出的花，新补到的花留到下一轮
func (p *PostDrawPhase) TilesToShow() []*TileInstance {
	return slices.Clone(p.tilesToShow)
}

func (p *PostDrawPhase) onEnter() {
	p.tilesToShow = p.hand.Seat(p.seat).BonusTilesInHand()
}

func (p *PostDrawPhase) errorForAction(a *Action) error {
	if err := p.checkSeat(a); err != nil {
		return err
	}
	if a.Kind != ActionRevealBonusTileThenDraw {
		return ErrInvalidAction.WithContext("action", a.Kind.String())
	}
	if !slices.Contains(p.tilesToShow, a.Tile) {
		return ErrInvalidAction.WithContext("reason", "newly drawn bonus tile cannot be revealed yet")
	}
	return a.validate(p.hand)
}

func (p *PostDrawPhase) execute(a *Action) error {
	if err := a.execute(p.hand); err != nil {
		return err
	}
	p.tilesToShow = removeInstances(p.tilesToShow, []*TileInstance{a.Tile})
	return nil
}

func (p *PostDrawPhase) isCompleted() bool {
	return len(p.tilesToShow) == 0 || p.hand.wallExhausted
}

func (p *PostDrawPhase) nextPhase() Phase {
	h := p.hand
	if h.wallExhausted {
		return newEndOfHandPhase(h, SeatNull)
	}
	if p.seat != WindNorth {
		return newPostDrawPhase(h, p.seat.Next(), p.round)
	}
	for _, s := range h.seats {
		if s.HasBonusTileInHand() {
			return newPostDrawPhase(h, WindEast, p.round+1)
		}
	}
	return newToDiscardPhase(h, WindEast, nil)
}

// ToDiscardPhase 出牌、亮花或自摸
type ToDiscardPhase struct {
	phase
	latestDrawn *TileInstance
	claimed     bool // 吃碰后出牌，不能自摸
	discarded   *TileInstance
	selfDrawn   bool
}

func newToDiscardPhase(h *Hand, seat Wind, latestDrawn *TileInstance) *ToDiscardPhase {
	return &ToDiscardPhase{phase: phase{hand: h, seat: seat}, latestDrawn: latestDrawn}
}

func newClaimedToDiscardPhase(h *Hand, seat Wind) *ToDiscardPhase {
	p := newToDiscardPhase(h, seat, nil)
	p.claimed = true
	return p
}

func (p *ToDiscardPhase) Name() string    { return fmt.Sprintf("To Discard (%s)", p.seat) }
func (p *ToDiscardPhase) Kind() PhaseKind { return PhaseToDiscard }

func (p *ToDiscardPhase) LatestDrawn() *TileInstance { return p.latestDrawn }

func (p *ToDiscardPhase) onEnter() {
	p.hand.latestDrawn = p.latestDrawn
}

func (p *ToDiscardPhase) errorForAction(a *Action) error {
	if err := p.checkSeat(a); err != nil {
		return err
	}
	switch a.Kind {
	case ActionDiscardTile, ActionRevealBonusTileThenDraw:
	case ActionSelfDrawMahjong:
		if p.claimed {
			return ErrInvalidAction.WithContext("reason", "cannot self-draw after a claim")
		}
	default:
		return ErrInvalidAction.WithContext("action", a.Kind.String())
	}
	return a.validate(p.hand)
}

func (p *ToDiscardPhase) execute(a *Action) error {
	if err := a.execute(p.hand); err != nil {
		return err
	}
	switch a.Kind {
	case ActionDiscardTile:
		p.discarded = a.Tile
	case ActionRevealBonusTileThenDraw:
		p.latestDrawn = p.hand.latestDrawn
	case ActionSelfDrawMahjong:
		p.selfDrawn = true
	}
	return nil
}

func (p *ToDiscardPhase) isCompleted() bool {
	return p.discarded != nil || p.selfDrawn || p.hand.wallExhausted
}

func (p *ToDiscardPhase) nextPhase() Phase {
	switch {
	case p.selfDrawn:
		return newEndOfHandPhase(p.hand, p.seat)
	case p.discarded != nil:
		return newWindowPhase(p.hand, p.seat, p.discarded)
	default:
		return newEndOfHandPhase(p.hand, SeatNull)
	}
}

// WindowPhase 抢牌窗口，每个座位一个槽位，后提交的覆盖先提交的
type WindowPhase struct {
	phase
	tile     *TileInstance
	order    []Wind
	slots    map[Wind]*Action
	closed   bool
	selected *Action
}

func newWindowPhase(h *Hand, discarder Wind, tile *TileInstance) *WindowPhase {
	return &WindowPhase{
		phase: phase{hand: h, seat: discarder},
		tile:  tile,
		order: OrderedSeatsFrom(discarder)[1:],
		slots: make(map[Wind]*Action, NP4-1),
	}
}

func (w *WindowPhase) Name() string    { return "Window of Opportunity" }
func (w *WindowPhase) Kind() PhaseKind { return PhaseWindow }

// DiscardedTile 可以抢的那张牌
func (w *WindowPhase) DiscardedTile() *TileInstance { return w.tile }

func (w *WindowPhase) IsClosed() bool { return w.closed }

// Pending 尚未响应的座位
func (w *WindowPhase) Pending() []Wind {
	var seats []Wind
	for _, s := range w.order {
		if _, ok := w.slots[s]; !ok {
			seats = append(seats, s)
		}
	}
	return seats
}

// Selected 窗口关闭后胜出的操作，全部过时为nil
func (w *WindowPhase) Selected() *Action { return w.selected }

func (w *WindowPhase) errorForAction(a *Action) error {
	if w.closed {
		return ErrWindowClosed
	}
	if !a.IsWindowAction() {
		return ErrInvalidAction.WithContext("action", a.Kind.String())
	}
	if a.Kind == ActionCloseWindow {
		if a.Seat != SeatNull {
			return ErrNotYourTurn.WithContext("reason", "only the host closes the window")
		}
		return nil
	}
	if a.Seat == w.seat {
		return ErrOwnDiscard
	}
	if !slices.Contains(w.order, a.Seat) {
		return ErrNotYourTurn.WithContext("seat", a.Seat.String())
	}
	if a.Kind == ActionFormMeld && a.Meld != nil && a.Meld.Kind == MeldChow && a.Seat != w.seat.Next() {
		return ErrChowNotNextSeat.WithContext("seat", a.Seat.String())
	}
	if a.Kind != ActionSkipWindow && a.Tile != w.tile {
		return ErrWrongTile
	}
	return a.validate(w.hand)
}

func (w *WindowPhase) execute(a *Action) error {
	if a.Kind == ActionCloseWindow {
		return w.resolve()
	}
	w.slots[a.Seat] = a
	if len(w.slots) == len(w.order) {
		return w.resolve()
	}
	return nil
}

// resolve 选出优先级最高的操作并执行，只会生效一次；
// 同优先级时出牌者下家方向最近的座位优先
func (w *WindowPhase) resolve() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var best *Action
	for _, s := range w.order {
		a, ok := w.slots[s]
		if !ok {
			continue
		}
		if best == nil || a.Priority() > best.Priority() {
			best = a
		}
	}
	if best == nil || best.Kind == ActionSkipWindow {
		w.hand.logger.Debugf("window closed without claim on %s", w.tile)
		return nil
	}

	if err := best.execute(w.hand); err != nil {
		return err
	}
	w.selected = best
	w.hand.logger.Infof("window resolved to %s", best)
	return nil
}

func (w *WindowPhase) isCompleted() bool {
	return w.closed
}

func (w *WindowPhase) nextPhase() Phase {
	if w.selected == nil {
		return newToDrawPhase(w.hand, w.seat.Next())
	}
	return w.selected.nextPhase(w)
}

// ToDrawPhase 进入即摸牌，牌墙摸完则流局
type ToDrawPhase struct {
	phase
	drawn *TileInstance
	done  bool
}

func newToDrawPhase(h *Hand, seat Wind) *ToDrawPhase {
	return &ToDrawPhase{phase: phase{hand: h, seat: seat}}
}

func (p *ToDrawPhase) Name() string    { return fmt.Sprintf("To Draw (%s)", p.seat) }
func (p *ToDrawPhase) Kind() PhaseKind { return PhaseToDraw }

func (p *ToDrawPhase) onEnter() {
	a := NewDrawTileAction(p.seat)
	if err := a.execute(p.hand); err != nil {
		p.hand.logger.Errorf("draw for %s failed: %v", p.seat, err)
	}
	p.drawn = p.hand.latestDrawn
	p.done = true
}

func (p *ToDrawPhase) errorForAction(a *Action) error {
	return ErrInvalidAction.WithContext("action", a.Kind.String())
}

func (p *ToDrawPhase) execute(a *Action) error {
	return p.errorForAction(a)
}

func (p *ToDrawPhase) isCompleted() bool {
	return p.done
}

func (p *ToDrawPhase) nextPhase() Phase {
	if p.drawn == nil {
		return newEndOfHandPhase(p.hand, SeatNull)
	}
	return newToDiscardPhase(p.hand, p.seat, p.drawn)
}

// EndOfHandPhase 终止阶段，只接受赢家的下一局操作
type EndOfHandPhase struct {
	phase
	over bool
}

func newEndOfHandPhase(h *Hand, winner Wind) *EndOfHandPhase {
	return &EndOfHandPhase{phase: phase{hand: h, seat: winner}}
}

func (p *EndOfHandPhase) Name() string    { return "End of Hand" }
func (p *EndOfHandPhase) Kind() PhaseKind { return PhaseEndOfHand }

// Winner 赢家，流局为SeatNull
func (p *EndOfHandPhase) Winner() Wind { return p.seat }

func (p *EndOfHandPhase) errorForAction(a *Action) error {
	if p.over {
		return ErrHandOver
	}
	if a.Kind != ActionNextHand {
		return ErrInvalidAction.WithContext("action", a.Kind.String())
	}
	if p.seat != SeatNull && a.Seat != p.seat {
		return ErrNotWinner.WithContext("seat", a.Seat.String())
	}
	return nil
}

func (p *EndOfHandPhase) execute(a *Action) error {
	if err := a.execute(p.hand); err != nil {
		return err
	}
	p.over = true
	return nil
}

func (p *EndOfHandPhase) isCompleted() bool {
	return p.over
}

func (p *EndOfHandPhase) nextPhase() Phase {
	return nil
}
