package mahjong

import (
	"slices"
)

// TileFilter 牌型限定条件
type TileFilter func(Tile) bool

func IsTerminalTile(t Tile) bool { return t.IsTerminal() }

func IsHonorTile(t Tile) bool { return t.IsHonor() }

// IsTerminalOrHonorTile 幺九或字牌
func IsTerminalOrHonorTile(t Tile) bool { return t.IsTerminal() || t.IsHonor() }

// IsGreenTile 绿一色用牌：发和条子
func IsGreenTile(t Tile) bool {
	return t == TileFa || (t.IsNumbered() && t.Color() == ColorBamboo)
}

// SuitFilter 限定某一花色的数牌
func SuitFilter(color EColor) TileFilter {
	return func(t Tile) bool { return t.IsNumbered() && t.Color() == color }
}

// SuitOrHonorFilter 某一花色的数牌或字牌
func SuitOrHonorFilter(color EColor) TileFilter {
	return func(t Tile) bool { return t.IsHonor() || (t.IsNumbered() && t.Color() == color) }
}

type matcherShape int

const (
	shapeChow matcherShape = iota
	shapePong
	shapeKong
	shapeEyePair
	shapeChowOrPong
)

var shapeNames = []string{"Chow", "Pong", "Kong", "EyePair", "ChowOrPong"}

// MeldMatcher 在牌池中查找某种面子
type MeldMatcher struct {
	shape   matcherShape
	filters []TileFilter
}

func NewChowMatcher(filters ...TileFilter) *MeldMatcher {
	return &MeldMatcher{shape: shapeChow, filters: filters}
}

func NewPongMatcher(filters ...TileFilter) *MeldMatcher {
	return &MeldMatcher{shape: shapePong, filters: filters}
}

func NewKongMatcher(filters ...TileFilter) *MeldMatcher {
	return &MeldMatcher{shape: shapeKong, filters: filters}
}

func NewEyePairMatcher(filters ...TileFilter) *MeldMatcher {
	return &MeldMatcher{shape: shapeEyePair, filters: filters}
}

func NewChowOrPongMatcher(filters ...TileFilter) *MeldMatcher {
	return &MeldMatcher{shape: shapeChowOrPong, filters: filters}
}

func (m *MeldMatcher) String() string {
	return shapeNames[m.shape]
}

func (m *MeldMatcher) accept(t Tile) bool {
	for _, f := range m.filters {
		if !f(t) {
			return false
		}
	}
	return true
}

// TileMatches 所有可组成的面子(按牌值去重)，牌值升序，顺子在刻子之前
func (m *MeldMatcher) TileMatches(tiles []Tile) []Meld {
	counts := make(map[Tile]int)
	for _, t := range tiles {
		if t.IsValid() && m.accept(t) {
			counts[t]++
		}
	}

	switch m.shape {
	case shapeChow:
		return chowMatches(counts)
	case shapePong:
		return sameMatches(counts, MeldPong)
	case shapeKong:
		return sameMatches(counts, MeldKong)
	case shapeEyePair:
		return sameMatches(counts, MeldEyePair)
	case shapeChowOrPong:
		return append(chowMatches(counts), sameMatches(counts, MeldPong)...)
	default:
		return nil
	}
}

func chowMatches(counts map[Tile]int) []Meld {
	var melds []Meld
	for c := ColorCharacter; c <= ColorDot; c++ {
		var present [9]bool
		for p := range PointCountByColor[c] {
			present[p] = counts[MakeTile(c, p)] > 0
		}
		for p := 0; p+2 < len(present); p++ {
			if present[p] && present[p+1] && present[p+2] {
				melds = append(melds, NewChow(MakeTile(c, p)))
			}
		}
	}
	return melds
}

func sameMatches(counts map[Tile]int, kind MeldKind) []Meld {
	values := make([]Tile, 0, len(counts))
	for t, n := range counts {
		if n >= kind.Size() {
			values = append(values, t)
		}
	}
	slices.Sort(values)

	melds := make([]Meld, len(values))
	for i, t := range values {
		melds[i] = Meld{Kind: kind, Tile: t}
	}
	return melds
}

// TileInstanceMatches 把每个牌值面子展开到实体牌的所有组合，组合内按牌池顺序
func (m *MeldMatcher) TileInstanceMatches(pool []*TileInstance) []*MeldInstance {
	var res []*MeldInstance
	for _, meld := range m.TileMatches(tileValues(pool)) {
		for _, tiles := range expandMeld(meld, pool) {
			res = append(res, newMeldInstance(meld, tiles))
		}
	}
	return res
}

// Matches 已亮出的面子是否满足该匹配器，刻子位置也接受杠
func (m *MeldMatcher) Matches(meld *MeldInstance) bool {
	var ok bool
	switch m.shape {
	case shapeChow:
		ok = meld.Kind == MeldChow
	case shapePong:
		ok = meld.IsPongLike()
	case shapeKong:
		ok = meld.Kind == MeldKong
	case shapeEyePair:
		ok = meld.Kind == MeldEyePair
	case shapeChowOrPong:
		ok = meld.Kind == MeldChow || meld.IsPongLike()
	}
	if !ok || !meld.Meld.IsValid() {
		return false
	}
	for _, t := range meld.Meld.Tiles() {
		if !m.accept(t) {
			return false
		}
	}
	return true
}

func expandMeld(meld Meld, pool []*TileInstance) [][]*TileInstance {
	results := [][]*TileInstance{nil}
	values := meld.Tiles()
	for i := 0; i < len(values); {
		j := i
		for j < len(values) && values[j] == values[i] {
			j++
		}

		var candidates []*TileInstance
		for _, t := range pool {
			if t.Tile == values[i] {
				candidates = append(candidates, t)
			}
		}
		picks := pickInstances(candidates, j-i)

		next := make([][]*TileInstance, 0, len(results)*len(picks))
		for _, r := range results {
			for _, p := range picks {
				next = append(next, append(slices.Clone(r), p...))
			}
		}
		results = next
		i = j
	}
	return results
}

// pickInstances 从items中按顺序选k张的全部组合
func pickInstances(items []*TileInstance, k int) [][]*TileInstance {
	if k == 0 {
		return [][]*TileInstance{{}}
	}
	var res [][]*TileInstance
	for i := 0; i+k <= len(items); i++ {
		for _, rest := range pickInstances(items[i+1:], k-1) {
			res = append(res, append([]*TileInstance{items[i]}, rest...))
		}
	}
	return res
}
