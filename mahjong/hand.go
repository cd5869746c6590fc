package mahjong

import (
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hand 一局牌
type Hand struct {
	id             string
	prevailingWind Wind
	rule           *Rule
	dealer         *Dealer
	discardPile    []*TileInstance
	seats          [NP4]*PlayData
	phase          Phase
	winningHand    *WinningHand
	latestDrawn    *TileInstance
	wallExhausted  bool
	finished       bool
	onFinish       func()
	logger         logrus.FieldLogger
}

type handOptions struct {
	logger   logrus.FieldLogger
	rng      *rand.Rand
	manual   *Manual
	onFinish func()
}

type HandOption func(*handOptions)

func WithLogger(logger logrus.FieldLogger) HandOption {
	return func(o *handOptions) { o.logger = logger }
}

// WithRand 指定洗牌用的随机源，测试中用固定种子
func WithRand(rng *rand.Rand) HandOption {
	return func(o *handOptions) { o.rng = rng }
}

func WithManual(manual *Manual) HandOption {
	return func(o *handOptions) { o.manual = manual }
}

// WithOnFinish 下一局操作执行后回调
func WithOnFinish(fn func()) HandOption {
	return func(o *handOptions) { o.onFinish = fn }
}

// NewHand 洗牌发牌并进入开局补花
func NewHand(prevailing Wind, rule *Rule, opts ...HandOption) (*Hand, error) {
	o := &handOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if rule == nil {
		rule = DefaultRule()
	}

	id := uuid.NewString()
	h := &Hand{
		id:             id,
		prevailingWind: prevailing,
		rule:           rule,
		dealer:         NewDealer(o.rng, rule.DeadWallTiles),
		discardPile:    make([]*TileInstance, 0),
		onFinish:       o.onFinish,
		logger:         o.logger.WithFields(logrus.Fields{"hand": id, "prevailing": prevailing.String()}),
	}
	if err := h.dealer.Initialize(o.manual); err != nil {
		return nil, err
	}
	for _, w := range OrderedSeatsFrom(WindEast) {
		h.seats[w] = newPlayData(h, w, h.dealer.Deal(initTileCount(w)))
	}
	h.logger.Infof("hand dealt, wall %d", h.dealer.GetRestCount())

	h.enterPhase(newPostDrawPhase(h, WindEast, 0))
	h.advance()
	return h, nil
}

func (h *Hand) ID() string {
	return h.id
}

func (h *Hand) PrevailingWind() Wind {
	return h.prevailingWind
}

func (h *Hand) Rule() *Rule {
	return h.rule
}

// Seat 座位数据，无效座位返回nil
func (h *Hand) Seat(w Wind) *PlayData {
	if !w.IsValid() {
		return nil
	}
	return h.seats[w]
}

func (h *Hand) Dealer() *Dealer {
	return h.dealer
}

func (h *Hand) CurrentPhase() Phase {
	return h.phase
}

func (h *Hand) WinningHand() *WinningHand {
	return h.winningHand
}

func (h *Hand) IsFinished() bool {
	return h.finished
}

func (h *Hand) DiscardPile() []*TileInstance {
	return slices.Clone(h.discardPile)
}

// TopDiscard 最后打出的牌
func (h *Hand) TopDiscard() *TileInstance {
	if len(h.discardPile) == 0 {
		return nil
	}
	return h.discardPile[len(h.discardPile)-1]
}

// RevealedTiles 所有人可见的牌：面子、花牌和牌河
func (h *Hand) RevealedTiles() []*TileInstance {
	var tiles []*TileInstance
	for _, s := range h.seats {
		for _, m := range s.melds {
			tiles = append(tiles, m.Tiles...)
		}
	}
	for _, s := range h.seats {
		tiles = append(tiles, s.bonusTiles...)
	}
	return append(tiles, h.discardPile...)
}

// TileCount 所有位置上的实体牌总数
func (h *Hand) TileCount() int {
	n := h.dealer.GetRestCount() + len(h.discardPile)
	for _, s := range h.seats {
		n += len(s.handTiles) + len(s.bonusTiles)
		for _, m := range s.melds {
			n += len(m.Tiles)
		}
	}
	return n
}

// TryExecuteAction 交给当前阶段执行，然后推进所有无需外部输入的阶段
func (h *Hand) TryExecuteAction(a *Action) error {
	if a == nil {
		return ErrInvalidAction
	}
	if err := h.phase.errorForAction(a); err != nil {
		h.logger.Debugf("reject %s in %s: %v", a, h.phase.Name(), err)
		return err
	}
	err := h.phase.execute(a)
	if err != nil {
		h.logger.Errorf("execute %s in %s: %v", a, h.phase.Name(), err)
	}
	h.advance()
	if h.finished && h.onFinish != nil {
		onFinish := h.onFinish
		h.onFinish = nil
		onFinish()
	}
	return err
}

func (h *Hand) CanExecuteAction(a *Action) bool {
	return a != nil && h.phase.errorForAction(a) == nil
}

func (h *Hand) advance() {
	for h.phase.isCompleted() {
		next := h.phase.nextPhase()
		if next == nil {
			return
		}
		h.enterPhase(next)
	}
}

func (h *Hand) enterPhase(p Phase) {
	h.phase = p
	h.logger.WithField("seat", p.Seat().String()).Debugf("enter %s", p.Name())
	p.onEnter()
}

func (h *Hand) drawTile(seat *PlayData) {
	tile := h.dealer.DrawTile()
	if tile == nil {
		h.wallExhausted = true
		h.latestDrawn = nil
		h.logger.Info("wall exhausted")
		return
	}
	seat.putHandTile(tile)
	h.latestDrawn = tile
}

func (h *Hand) drawReplacement(seat *PlayData) {
	tile := h.dealer.DrawReplacement()
	if tile == nil {
		h.wallExhausted = true
		h.latestDrawn = nil
		h.logger.Info("wall exhausted on replacement")
		return
	}
	seat.putHandTile(tile)
	h.latestDrawn = tile
}

func (h *Hand) popDiscard() *TileInstance {
	tile := h.TopDiscard()
	if tile != nil {
		h.discardPile = h.discardPile[:len(h.discardPile)-1]
	}
	return tile
}

// discarder 当前抢牌窗口的出牌者
func (h *Hand) discarder() Wind {
	if w, ok := h.phase.(*WindowPhase); ok {
		return w.seat
	}
	return SeatNull
}

// declareWin 手牌全部移入胡牌分解的面子中
func (h *Hand) declareWin(seat *PlayData, wh *WinningHand) {
	seat.handTiles = seat.handTiles[:0]
	for _, m := range wh.Melds {
		if !slices.Contains(seat.melds, m) {
			seat.addMeld(m)
		}
	}
	h.winningHand = wh
	h.logger.WithField("seat", seat.wind.String()).Infof("mahjong %s: %v", wh.Type, wh.Combinations)
}

func (h *Hand) finish() {
	h.finished = true
}
