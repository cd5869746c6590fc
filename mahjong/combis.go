package mahjong

// 标准牌型
var (
	TripletsHand = pongHand("Triplets Hand", nil, func(r *Rule) int { return r.TripletsHand })
	SequenceHand = meldHand("Sequence Hand", NewChowMatcher, nil, func(r *Rule) int { return r.SequenceHand })

	MixedTerminals = pongHand("Mixed Terminals", IsTerminalOrHonorTile, func(r *Rule) int { return r.MixedTerminals })
	PureTerminals  = pongHand("Pure Terminals", IsTerminalTile, maxDoubles)
	AllHonors      = pongHand("All Honors", IsHonorTile, maxDoubles)

	MixedCharacters = suitHand("Mixed Characters", SuitOrHonorFilter(ColorCharacter), mixedSuits)
	MixedBamboos    = suitHand("Mixed Bamboos", SuitOrHonorFilter(ColorBamboo), mixedSuits)
	MixedDots       = suitHand("Mixed Dots", SuitOrHonorFilter(ColorDot), mixedSuits)
	PureCharacters  = suitHand("Pure Characters", SuitFilter(ColorCharacter), pureSuits)
	PureBamboos     = suitHand("Pure Bamboos", SuitFilter(ColorBamboo), pureSuits)
	PureDots        = suitHand("Pure Dots", SuitFilter(ColorDot), pureSuits)
	PureGreenSuit   = suitHand("Pure Green Suit", IsGreenTile, maxDoubles)

	HalfFlush = NewCompoundCombinationMatcher("Half Flush", true, MixedCharacters, MixedBamboos, MixedDots)
	FullFlush = NewCompoundCombinationMatcher("Full Flush", true, PureCharacters, PureBamboos, PureDots)

	NormalHand = suitHand("Normal Hand", nil, FixedDoubles(0))

	// 取第一个匹配的
	Flush    = NewCompoundCombinationMatcher("Flush", true, FullFlush, PureGreenSuit, HalfFlush)
	Triplets = NewCompoundCombinationMatcher("Triplets", true, AllHonors, PureTerminals, MixedTerminals, TripletsHand)
)

func maxDoubles(r *Rule) int { return r.MaxDoubles }
func mixedSuits(r *Rule) int { return r.MixedSuits }
func pureSuits(r *Rule) int  { return r.PureSuits }

func pongHand(name string, filter TileFilter, doubles DoubleProvider) *MeldCombinationMatcher {
	return meldHand(name, NewPongMatcher, filter, doubles)
}

func suitHand(name string, filter TileFilter, doubles DoubleProvider) *MeldCombinationMatcher {
	return meldHand(name, NewChowOrPongMatcher, filter, doubles)
}

// meldHand 4组同类面子+1对将，全部使用同一限定条件
func meldHand(name string, body func(...TileFilter) *MeldMatcher, filter TileFilter, doubles DoubleProvider) *MeldCombinationMatcher {
	var filters []TileFilter
	if filter != nil {
		filters = append(filters, filter)
	}
	b := NewMeldCombinationBuilder(name)
	for range 4 {
		b.WithMeld(body(filters...))
	}
	return b.WithMeld(NewEyePairMatcher(filters...)).MustBuild(true, doubles)
}

// matchingCombinations 可同时成立的牌型，都不成立时退回普通胡；acceptSequence为nil时平胡不加额外限制
func matchingCombinations(tiles []*TileInstance, existing []*MeldInstance, acceptSequence func(*Combination) bool) []*Combination {
	var combinations []*Combination
	for _, m := range []CombinationMatcher{Flush, Triplets, SequenceHand} {
		c := m.FirstMatch(tiles, existing)
		if c == nil || (m == SequenceHand && acceptSequence != nil && !acceptSequence(c)) {
			continue
		}
		combinations = append(combinations, c)
	}
	if len(combinations) == 0 {
		if c := NormalHand.FirstMatch(tiles, existing); c != nil {
			combinations = append(combinations, c)
		}
	}
	return combinations
}
