package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kevin-chtw/tw_sgmahjong/mahjong"
	"github.com/sirupsen/logrus"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

var (
	ErrInvalidSeat    = errors.New("invalid seat")
	ErrPlayerNotFound = errors.New("player not on table")
	ErrPlayerExists   = errors.New("player already on table")
	ErrSeatTaken      = errors.New("seat already taken")
	ErrSeatMismatch   = errors.New("action seat does not match player")
	ErrNotStarted     = errors.New("game not started")
	ErrTableNotReady  = errors.New("table needs four players")
)

// HandResult 一局的结算结果
type HandResult struct {
	HandID string
	Winner mahjong.Wind
	Score  *mahjong.Score // 流局为nil
	Deltas []int64        // 按座位的输赢分
}

type tableOptions struct {
	now         func() time.Time
	handLogger  logrus.FieldLogger
	handOptions []mahjong.HandOption
}

type TableOption func(*tableOptions)

// WithClock 替换定时器使用的时钟
func WithClock(now func() time.Time) TableOption {
	return func(o *tableOptions) { o.now = now }
}

func WithHandLogger(l logrus.FieldLogger) TableOption {
	return func(o *tableOptions) { o.handLogger = l }
}

// WithHandOptions 创建每一局时附加的选项
func WithHandOptions(opts ...mahjong.HandOption) TableOption {
	return func(o *tableOptions) { o.handOptions = append(o.handOptions, opts...) }
}

// Table 一张牌桌，所有对牌局的修改都在mu下串行执行
type Table struct {
	id          string
	cfg         *Config
	prevailing  mahjong.Wind
	mu          sync.Mutex
	players     map[string]*Player // 玩家ID -> Player
	seats       [mahjong.NP4]*Player
	round       *mahjong.Round
	timer       *Timer
	window      mahjong.Phase // 正在计时的抢牌窗口
	scorelator  *mahjong.Scorelator
	settled     string // 已结算的局ID
	results     []*HandResult
	handOptions []mahjong.HandOption
}

// NewTable 创建新的牌桌实例
func NewTable(cfg *Config, opts ...TableOption) (*Table, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	prevailing, err := cfg.prevailingWind()
	if err != nil {
		return nil, err
	}
	o := &tableOptions{}
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.NewString()
	if o.handLogger == nil {
		o.handLogger = logrus.StandardLogger().WithField("table", id)
	}
	handOptions := []mahjong.HandOption{mahjong.WithLogger(o.handLogger)}
	if cfg.Table.Manual != "" {
		manual, err := mahjong.LoadManual(cfg.Table.Manual)
		if err != nil {
			return nil, err
		}
		handOptions = append(handOptions, mahjong.WithManual(manual))
	}
	handOptions = append(handOptions, o.handOptions...)

	t := &Table{
		id:          id,
		cfg:         cfg,
		prevailing:  prevailing,
		players:     make(map[string]*Player),
		timer:       NewTimer(o.now),
		scorelator:  mahjong.NewScorelator(mahjong.ScoreType(cfg.Table.ScoreType), cfg.Table.ScoreBase),
		handOptions: handOptions,
	}
	logger.Log.Infof("table %s created, prevailing %s", id, prevailing)
	return t, nil
}

func (t *Table) ID() string {
	return t.id
}

// AddPlayer 玩家入座
func (t *Table) AddPlayer(id string, seat mahjong.Wind, score int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !seat.IsValid() {
		return ErrInvalidSeat
	}
	if _, ok := t.players[id]; ok {
		return ErrPlayerExists
	}
	if t.seats[seat] != nil {
		return ErrSeatTaken
	}
	p := NewPlayer(id, seat)
	p.AddScore(score)
	p.Status = PlayerStatusEnter
	t.players[id] = p
	t.seats[seat] = p
	logger.Log.Infof("player %s added to table %s at %s", id, t.id, seat)
	return nil
}

// Start 四人坐满后开始第一局
func (t *Table) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.players) != mahjong.NP4 {
		return ErrTableNotReady
	}
	if t.round != nil {
		return nil
	}
	rule := t.cfg.Rule
	round, err := mahjong.NewRound(t.prevailing, &rule, t.handOptions...)
	if err != nil {
		return err
	}
	t.round = round
	for _, p := range t.players {
		p.Status = PlayerStatusPlaying
	}
	t.afterAction()
	logger.Log.Infof("table %s started hand %s", t.id, round.CurrentHand().ID())
	return nil
}

// OnPlayerAction 处理玩家动作，玩家只能以自己的座位行动
func (t *Table) OnPlayerAction(playerID string, a *mahjong.Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if a == nil {
		return mahjong.ErrInvalidAction
	}
	if a.Seat != p.Seat {
		return ErrSeatMismatch
	}
	if p.Status != PlayerStatusPlaying {
		return ErrNotStarted
	}
	err := t.round.CurrentHand().TryExecuteAction(a)
	t.afterAction()
	return err
}

// ValidActions 玩家当前可执行的动作
func (t *Table) ValidActions(playerID string) []*mahjong.Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.players[playerID]
	if !ok || p.Status != PlayerStatusPlaying {
		return nil
	}
	hand := t.round.CurrentHand()
	if w, ok := hand.CurrentPhase().(*mahjong.WindowPhase); ok {
		return hand.ValidWindowActions(p.Seat, w)
	}
	return hand.ValidTurnActions(p.Seat)
}

// SetOnline 玩家网络状态变化，掉线玩家在抢牌窗口中自动过
func (t *Table) SetOnline(playerID string, online bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if p.online == online {
		return nil
	}
	p.online = online
	logger.Log.Infof("player %s online status changed to %v", playerID, online)
	if !online && t.round != nil {
		t.afterAction()
	}
	return nil
}

// afterAction 抢牌窗口开始计时，牌局结束时结算
func (t *Table) afterAction() {
	if err := t.round.Err(); err != nil {
		logger.Log.Errorf("table %s: %v", t.id, err)
	}
	hand := t.round.CurrentHand()
	phase := hand.CurrentPhase()
	switch p := phase.(type) {
	case *mahjong.WindowPhase:
		if t.skipOffline(hand, p) {
			t.afterAction()
			return
		}
		if t.window != phase && !p.IsClosed() {
			t.window = phase
			t.timer.Schedule(t.cfg.Table.WindowTimeout, t.closeWindow)
		}
	case *mahjong.EndOfHandPhase:
		t.cancelWindow()
		if t.settled != hand.ID() {
			t.settle(hand, p.Winner())
		}
	default:
		t.cancelWindow()
	}
}

// skipOffline 替掉线玩家选择过，有人被跳过时返回true
func (t *Table) skipOffline(hand *mahjong.Hand, w *mahjong.WindowPhase) bool {
	skipped := false
	for _, seat := range w.Pending() {
		if t.seats[seat].IsOnline() {
			continue
		}
		if err := hand.TryExecuteAction(mahjong.NewSkipAction(seat)); err != nil {
			logger.Log.Errorf("table %s skip offline %s: %v", t.id, seat, err)
			continue
		}
		skipped = true
	}
	return skipped
}

func (t *Table) cancelWindow() {
	t.window = nil
	t.timer.Cancel()
}

// closeWindow 超时关闭抢牌窗口，在tick中执行，已持有锁
func (t *Table) closeWindow() {
	if t.round == nil {
		return
	}
	t.window = nil
	hand := t.round.CurrentHand()
	if err := hand.TryExecuteAction(mahjong.NewCloseWindowAction()); err != nil {
		logger.Log.Errorf("table %s close window: %v", t.id, err)
	}
	t.afterAction()
}

func (t *Table) settle(hand *mahjong.Hand, winner mahjong.Wind) {
	t.settled = hand.ID()
	result := &HandResult{
		HandID: hand.ID(),
		Winner: winner,
		Deltas: make([]int64, mahjong.NP4),
	}
	if wh := hand.WinningHand(); wh != nil {
		result.Score = mahjong.CalculateScore(wh, hand.Rule())
		balances := make([]int64, mahjong.NP4)
		for i, p := range t.seats {
			balances[i] = p.GetScore()
		}
		result.Deltas = t.scorelator.Settle(wh, result.Score, balances)
		for i, p := range t.seats {
			p.AddScore(result.Deltas[i])
		}
		logger.Log.Infof("table %s hand %s won by %s, doubles %d, deltas %v",
			t.id, hand.ID(), winner, result.Score.Total, result.Deltas)
	} else {
		logger.Log.Infof("table %s hand %s drawn", t.id, hand.ID())
	}
	t.results = append(t.results, result)
}

// NextActor 下一个需要行动的座位和当前阶段；流局后任何一家都可以开下一局，返回东家
func (t *Table) NextActor() (mahjong.Wind, mahjong.PhaseKind, string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.round == nil {
		return mahjong.SeatNull, 0, "", ErrNotStarted
	}
	phase := t.round.CurrentHand().CurrentPhase()
	seat := phase.Seat()
	if w, ok := phase.(*mahjong.WindowPhase); ok {
		seat = w.Pending()[0]
	}
	if !seat.IsValid() {
		seat = mahjong.WindEast
	}
	return seat, phase.Kind(), phase.Name(), nil
}

// HandID 当前这一局的ID，未开始时为空
func (t *Table) HandID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.round == nil {
		return ""
	}
	return t.round.CurrentHand().ID()
}

// currentHand 不加锁，只在持有锁或单协程的测试中使用
func (t *Table) currentHand() *mahjong.Hand {
	if t.round == nil {
		return nil
	}
	return t.round.CurrentHand()
}

func (t *Table) Player(id string) *Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.players[id]
}

// PlayerAt 座位上的玩家
func (t *Table) PlayerAt(seat mahjong.Wind) *Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !seat.IsValid() {
		return nil
	}
	return t.seats[seat]
}

func (t *Table) Results() []*HandResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*HandResult, len(t.results))
	copy(out, t.results)
	return out
}

func (t *Table) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.OnTick()
}
