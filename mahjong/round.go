package mahjong

// Round 一圈，圈风不变，每局结束后重新发牌
type Round struct {
	prevailingWind Wind
	rule           *Rule
	opts           []HandOption
	hand           *Hand
	handCount      int
	lastErr        error
}

func NewRound(prevailing Wind, rule *Rule, opts ...HandOption) (*Round, error) {
	r := &Round{
		prevailingWind: prevailing,
		rule:           rule,
		opts:           opts,
	}
	if err := r.startNextHand(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Round) PrevailingWind() Wind {
	return r.prevailingWind
}

func (r *Round) CurrentHand() *Hand {
	return r.hand
}

// HandCount 已开始的局数
func (r *Round) HandCount() int {
	return r.handCount
}

// Err 最近一次开局失败的原因
func (r *Round) Err() error {
	return r.lastErr
}

func (r *Round) startNextHand() error {
	opts := append(r.opts[:len(r.opts):len(r.opts)], WithOnFinish(func() {
		if err := r.startNextHand(); err != nil {
			r.hand.logger.Errorf("start next hand: %v", err)
		}
	}))
	hand, err := NewHand(r.prevailingWind, r.rule, opts...)
	if err != nil {
		r.lastErr = err
		return err
	}
	r.hand = hand
	r.handCount++
	r.lastErr = nil
	return nil
}
