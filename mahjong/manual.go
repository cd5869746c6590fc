package mahjong

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/spf13/viper"
)

// Manual 预设牌墙(调试用)
//
//	enable: true
//	cards:
//	  - "1万,2万,3万,东,东"   # 东家手牌，不足的部分随机补齐
//	  - "中,中"               # 南家
//	  - ""                    # 西家
//	  - ""                    # 北家
//	  - "发,发"               # 之后依次摸到的牌
type Manual struct {
	vp *viper.Viper
}

// LoadManual 读取预设牌墙文件
func LoadManual(path string) (*Manual, error) {
	m := &Manual{
		vp: viper.New(),
	}
	m.vp.SetConfigType("yaml")
	m.vp.SetConfigFile(path)
	if err := m.vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manual %s: %w", path, err)
	}
	return m, nil
}

func (m *Manual) Enabled() bool {
	if m == nil {
		return false
	}
	return m.vp.GetBool("enable")
}

// arrange 按预设排列牌墙，发牌从牌墙头部开始
func (m *Manual) arrange(set []*TileInstance, rng *rand.Rand) ([]*TileInstance, error) {
	cards := m.vp.GetStringSlice("cards")
	groups := make([][]Tile, len(cards))
	for i := range cards {
		tiles, err := namesToTiles(cards[i])
		if err != nil {
			return nil, err
		}
		groups[i] = tiles
	}

	rests := slices.Clone(set)
	picked := make([][]*TileInstance, len(groups))
	for i, g := range groups {
		if i < NP4 && len(g) > initTileCount(Wind(i)) {
			return nil, fmt.Errorf("%w: seat %s holds %d tiles", ErrPresetOverflow, Wind(i), len(g))
		}
		for _, t := range g {
			idx := slices.IndexFunc(rests, func(inst *TileInstance) bool { return inst.Tile == t })
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s", ErrPresetOverflow, t.Name())
			}
			picked[i] = append(picked[i], rests[idx])
			rests = slices.Delete(rests, idx, idx+1)
		}
	}

	shuffle(rests, rng)
	out := make([]*TileInstance, 0, len(set))
	for i := range NP4 {
		var g []*TileInstance
		if i < len(picked) {
			g = picked[i]
		}
		out = append(out, g...)
		more := initTileCount(Wind(i)) - len(g)
		out = append(out, rests[:more]...)
		rests = rests[more:]
	}
	for i := NP4; i < len(picked); i++ {
		out = append(out, picked[i]...)
	}
	out = append(out, rests...)
	return out, nil
}

func initTileCount(seat Wind) int {
	if seat == WindEast {
		return TileCountInitBanker
	}
	return TileCountInitNormal
}

func shuffle(s []*TileInstance, rng *rand.Rand) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
