package mahjong

// ValidWindowActions 座位在抢牌窗口中可做的操作，顺序为吃、碰、杠、胡、过
func (h *Hand) ValidWindowActions(seat Wind, w *WindowPhase) []*Action {
	p := h.Seat(seat)
	if p == nil || w == nil {
		return nil
	}
	tile := w.DiscardedTile()

	var actions []*Action
	for _, m := range []*MeldMatcher{NewChowMatcher(), NewPongMatcher(), NewKongMatcher()} {
		actions = append(actions, meldActions(p, tile, m)...)
	}
	if GetWinningHand(p, p.HandTiles(), tile, WinTypeDiscard) != nil {
		actions = append(actions, NewMahjongAction(seat, tile))
	}
	actions = append(actions, NewSkipAction(seat))

	valid := actions[:0]
	for _, a := range actions {
		if w.errorForAction(a) == nil {
			valid = append(valid, a)
		}
	}
	return valid
}

// meldActions 包含被抢那张牌的面子，同牌值只取一种
func meldActions(p *PlayData, discarded *TileInstance, matcher *MeldMatcher) []*Action {
	pool := append(p.HandTiles(), discarded)
	seen := make(map[Meld]bool)
	var actions []*Action
	for _, m := range matcher.TileInstanceMatches(pool) {
		if !m.Contains(discarded) || seen[m.Meld] {
			continue
		}
		seen[m.Meld] = true
		actions = append(actions, NewFormMeldAction(p.wind, m, discarded))
	}
	return actions
}

// ValidTurnActions 非抢牌阶段座位可做的操作
func (h *Hand) ValidTurnActions(seat Wind) []*Action {
	p := h.Seat(seat)
	var actions []*Action
	switch phase := h.phase.(type) {
	case *PostDrawPhase:
		for _, t := range phase.tilesToShow {
			actions = append(actions, NewRevealBonusTileAction(seat, t))
		}
	case *ToDiscardPhase:
		if p == nil {
			return nil
		}
		actions = append(actions, NewSelfDrawMahjongAction(seat))
		for _, t := range p.BonusTilesInHand() {
			actions = append(actions, NewRevealBonusTileAction(seat, t))
		}
		for _, t := range p.handTiles {
			actions = append(actions, NewDiscardAction(seat, t))
		}
	case *EndOfHandPhase:
		actions = append(actions, NewNextHandAction(seat))
	}

	valid := actions[:0]
	for _, a := range actions {
		if h.CanExecuteAction(a) {
			valid = append(valid, a)
		}
	}
	return valid
}
