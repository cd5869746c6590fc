package mahjong

import (
	"math/rand"
	"slices"
)

// Dealer 牌墙，正常摸牌从头部，补花从尾部
type Dealer struct {
	rng      *rand.Rand
	tileWall []*TileInstance
	deadWall int
}

// NewDealer 创建新的发牌器
func NewDealer(rng *rand.Rand, deadWall int) *Dealer {
	return &Dealer{
		rng:      rng,
		tileWall: make([]*TileInstance, 0, TileCountAll),
		deadWall: deadWall,
	}
}

// Initialize 生成全部实体牌并洗牌，预设牌墙生效时按预设排列
func (d *Dealer) Initialize(manual *Manual) error {
	set := NewTileSet()
	if manual.Enabled() {
		wall, err := manual.arrange(set, d.rng)
		if err != nil {
			return err
		}
		d.tileWall = wall
		return nil
	}
	shuffle(set, d.rng)
	d.tileWall = set
	return nil
}

func (d *Dealer) Deal(count int) []*TileInstance {
	tiles := slices.Clone(d.tileWall[:count])
	d.tileWall = d.tileWall[count:]
	return tiles
}

// CanDraw 牌尾保留的张数之外是否还有牌
func (d *Dealer) CanDraw() bool {
	return len(d.tileWall) > d.deadWall
}

// DrawTile 正常摸牌，没有可摸的牌时返回nil
func (d *Dealer) DrawTile() *TileInstance {
	if !d.CanDraw() {
		return nil
	}
	tile := d.tileWall[0]
	d.tileWall = d.tileWall[1:]
	return tile
}

// DrawReplacement 补花，从牌尾摸
func (d *Dealer) DrawReplacement() *TileInstance {
	if len(d.tileWall) == 0 {
		return nil
	}
	tile := d.tileWall[len(d.tileWall)-1]
	d.tileWall = d.tileWall[:len(d.tileWall)-1]
	return tile
}

// GetRestCount 获取剩余牌数
func (d *Dealer) GetRestCount() int {
	return len(d.tileWall)
}

func (d *Dealer) Tiles() []*TileInstance {
	return slices.Clone(d.tileWall)
}

func (d *Dealer) HasTile(tile *TileInstance) bool {
	return slices.Contains(d.tileWall, tile)
}
