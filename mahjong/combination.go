package mahjong

import (
	"errors"
	"fmt"
	"slices"
)

// DoubleProvider 按规则计算番数
type DoubleProvider func(*Rule) int

func FixedDoubles(n int) DoubleProvider {
	return func(*Rule) int { return n }
}

// Combination 命名牌型及其面子分解
type Combination struct {
	Name      string
	Melds     []*MeldInstance
	IsWinning bool
	Doubles   DoubleProvider
}

func (c *Combination) GetDoubles(rule *Rule) int {
	if c.Doubles == nil {
		return 0
	}
	return c.Doubles(rule)
}

func (c *Combination) String() string {
	return c.Name + ": " + meldsString(c.Melds)
}

// CombinationMatcher 牌型匹配
type CombinationMatcher interface {
	Name() string
	IsWinning() bool
	FirstMatch(tiles []*TileInstance, existing []*MeldInstance) *Combination
}

var errMatcherCount = errors.New("combination needs exactly 5 meld matchers")

// MeldCombinationBuilder 4组面子+1对将
type MeldCombinationBuilder struct {
	name     string
	matchers []*MeldMatcher
}

func NewMeldCombinationBuilder(name string) *MeldCombinationBuilder {
	return &MeldCombinationBuilder{name: name}
}

func (b *MeldCombinationBuilder) WithMeld(m *MeldMatcher) *MeldCombinationBuilder {
	b.matchers = append(b.matchers, m)
	return b
}

func (b *MeldCombinationBuilder) Build(isWinning bool, doubles DoubleProvider) (*MeldCombinationMatcher, error) {
	if len(b.matchers) != 5 {
		return nil, fmt.Errorf("%s: %w, got %d", b.name, errMatcherCount, len(b.matchers))
	}
	return &MeldCombinationMatcher{
		name:      b.name,
		matchers:  slices.Clone(b.matchers),
		isWinning: isWinning,
		doubles:   doubles,
	}, nil
}

// MustBuild 用于包级牌型定义，配置错误直接panic
func (b *MeldCombinationBuilder) MustBuild(isWinning bool, doubles DoubleProvider) *MeldCombinationMatcher {
	m, err := b.Build(isWinning, doubles)
	if err != nil {
		panic(err)
	}
	return m
}

type MeldCombinationMatcher struct {
	name      string
	matchers  []*MeldMatcher
	isWinning bool
	doubles   DoubleProvider
}

func (m *MeldCombinationMatcher) Name() string    { return m.name }
func (m *MeldCombinationMatcher) IsWinning() bool { return m.isWinning }

// FirstMatch 回溯查找第一个满足牌型的分解，先安放已亮出的面子
func (m *MeldCombinationMatcher) FirstMatch(tiles []*TileInstance, existing []*MeldInstance) *Combination {
	melds, ok := tryMatch(m.matchers, tiles, existing)
	if !ok {
		return nil
	}
	return &Combination{
		Name:      m.name,
		Melds:     melds,
		IsWinning: m.isWinning,
		Doubles:   m.doubles,
	}
}

// tryMatch 每层递归都使用新的切片，不修改调用方的数据
func tryMatch(matchers []*MeldMatcher, tiles []*TileInstance, existing []*MeldInstance) ([]*MeldInstance, bool) {
	if len(matchers) == 0 {
		return nil, len(tiles) == 0 && len(existing) == 0
	}

	if len(existing) > 0 {
		meld := existing[0]
		for i, matcher := range matchers {
			if !matcher.Matches(meld) {
				continue
			}
			rest, ok := tryMatch(slices.Delete(slices.Clone(matchers), i, i+1), tiles, existing[1:])
			if ok {
				return append([]*MeldInstance{meld}, rest...), true
			}
		}
		return nil, false
	}

	tried := make(map[Meld]bool)
	for _, candidate := range matchers[0].TileInstanceMatches(tiles) {
		// 同牌值的候选结果相同
		if tried[candidate.Meld] {
			continue
		}
		tried[candidate.Meld] = true

		rest, ok := tryMatch(matchers[1:], removeInstances(tiles, candidate.Tiles), nil)
		if ok {
			candidate.Concealed = true
			return append([]*MeldInstance{candidate}, rest...), true
		}
	}
	return nil, false
}

// removeInstances 返回去掉指定实体牌后的新切片
func removeInstances(tiles []*TileInstance, remove []*TileInstance) []*TileInstance {
	res := make([]*TileInstance, 0, len(tiles))
	for _, t := range tiles {
		if !slices.Contains(remove, t) {
			res = append(res, t)
		}
	}
	return res
}

// CompoundCombinationMatcher 依次尝试子牌型，第一个匹配的生效
type CompoundCombinationMatcher struct {
	name      string
	isWinning bool
	matchers  []CombinationMatcher
}

func NewCompoundCombinationMatcher(name string, isWinning bool, matchers ...CombinationMatcher) *CompoundCombinationMatcher {
	return &CompoundCombinationMatcher{name: name, isWinning: isWinning, matchers: matchers}
}

func (c *CompoundCombinationMatcher) Name() string    { return c.name }
func (c *CompoundCombinationMatcher) IsWinning() bool { return c.isWinning }

func (c *CompoundCombinationMatcher) FirstMatch(tiles []*TileInstance, existing []*MeldInstance) *Combination {
	for _, m := range c.matchers {
		if combination := m.FirstMatch(tiles, existing); combination != nil {
			return combination
		}
	}
	return nil
}
