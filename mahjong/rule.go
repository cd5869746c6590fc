package mahjong

import (
	"fmt"
)

// Rule 番数规则
type Rule struct {
	MaxDoubles     int `mapstructure:"max_doubles"`     // 封顶番数
	MixedSuits     int `mapstructure:"mixed_suits"`     // 混一色
	PureSuits      int `mapstructure:"pure_suits"`      // 清一色
	TripletsHand   int `mapstructure:"triplets_hand"`   // 对对胡
	SequenceHand   int `mapstructure:"sequence_hand"`   // 平胡
	MixedTerminals int `mapstructure:"mixed_terminals"` // 混幺九
	DeadWallTiles  int `mapstructure:"dead_wall_tiles"` // 牌尾保留张数
}

func DefaultRule() *Rule {
	return &Rule{
		MaxDoubles:     5,
		MixedSuits:     2,
		PureSuits:      4,
		TripletsHand:   2,
		SequenceHand:   1,
		MixedTerminals: 4,
		DeadWallTiles:  16,
	}
}

// Validate 检查规则是否合理
func (r *Rule) Validate() error {
	if r.MaxDoubles <= 0 {
		return fmt.Errorf("max_doubles must be positive, got %d", r.MaxDoubles)
	}
	if r.DeadWallTiles < 0 || r.DeadWallTiles >= TileCountAll-TileCountInitBanker-3*TileCountInitNormal {
		return fmt.Errorf("dead_wall_tiles out of range: %d", r.DeadWallTiles)
	}
	for name, v := range map[string]int{
		"mixed_suits":     r.MixedSuits,
		"pure_suits":      r.PureSuits,
		"triplets_hand":   r.TripletsHand,
		"sequence_hand":   r.SequenceHand,
		"mixed_terminals": r.MixedTerminals,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("max=%d mixed=%d pure=%d triplets=%d sequence=%d terminals=%d deadwall=%d",
		r.MaxDoubles, r.MixedSuits, r.PureSuits, r.TripletsHand, r.SequenceHand, r.MixedTerminals, r.DeadWallTiles)
}
