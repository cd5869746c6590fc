package mahjong

import (
	"cmp"
	"slices"
)

// PlayData 一个座位的牌局数据
type PlayData struct {
	hand       *Hand
	wind       Wind
	handTiles  []*TileInstance
	melds      []*MeldInstance
	bonusTiles []*TileInstance
}

func newPlayData(hand *Hand, wind Wind, tiles []*TileInstance) *PlayData {
	p := &PlayData{
		hand:       hand,
		wind:       wind,
		handTiles:  tiles,
		melds:      make([]*MeldInstance, 0),
		bonusTiles: make([]*TileInstance, 0),
	}
	p.sortHandTiles()
	return p
}

func (p *PlayData) Wind() Wind {
	return p.wind
}

// GameHand 所在的牌局
func (p *PlayData) GameHand() *Hand {
	return p.hand
}

func (p *PlayData) HandTiles() []*TileInstance {
	return slices.Clone(p.handTiles)
}

func (p *PlayData) Melds() []*MeldInstance {
	return slices.Clone(p.melds)
}

func (p *PlayData) BonusTiles() []*TileInstance {
	return slices.Clone(p.bonusTiles)
}

// TileCount 手牌数+面子数*3，杠按3张计
func (p *PlayData) TileCount() int {
	return len(p.handTiles) + 3*len(p.melds)
}

func (p *PlayData) HasTile(tile *TileInstance) bool {
	return slices.Contains(p.handTiles, tile)
}

func (p *PlayData) HasBonusTileInHand() bool {
	return slices.ContainsFunc(p.handTiles, func(t *TileInstance) bool { return t.Tile.IsBonus() })
}

// BonusTilesInHand 手中尚未亮出的花牌
func (p *PlayData) BonusTilesInHand() []*TileInstance {
	var tiles []*TileInstance
	for _, t := range p.handTiles {
		if t.Tile.IsBonus() {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

func (p *PlayData) putHandTile(tile *TileInstance) {
	p.handTiles = append(p.handTiles, tile)
	p.sortHandTiles()
}

// removeHandTiles 全部在手中才移除
func (p *PlayData) removeHandTiles(tiles ...*TileInstance) error {
	for _, t := range tiles {
		if !p.HasTile(t) {
			return ErrTileNotInHand.WithContext("tile", t.String())
		}
	}
	p.handTiles = removeInstances(p.handTiles, tiles)
	return nil
}

// discard 打出一张牌到牌河，有未亮的花牌时不能出牌
func (p *PlayData) discard(tile *TileInstance) error {
	if !p.HasTile(tile) {
		return ErrTileNotInHand.WithContext("tile", tile.String())
	}
	if tile.Tile.IsBonus() || p.HasBonusTileInHand() {
		return ErrBonusTileNotRevealed.WithContext("seat", p.wind.String())
	}
	p.handTiles = removeInstances(p.handTiles, []*TileInstance{tile})
	p.hand.discardPile = append(p.hand.discardPile, tile)
	return nil
}

// revealBonusTile 亮花，补牌由Hand负责
func (p *PlayData) revealBonusTile(tile *TileInstance) error {
	if !tile.Tile.IsBonus() {
		return ErrInvalidAction.WithContext("tile", tile.String())
	}
	if err := p.removeHandTiles(tile); err != nil {
		return err
	}
	p.bonusTiles = append(p.bonusTiles, tile)
	return nil
}

func (p *PlayData) addMeld(meld *MeldInstance) {
	p.melds = append(p.melds, meld)
}

func (p *PlayData) sortHandTiles() {
	slices.SortStableFunc(p.handTiles, func(a, b *TileInstance) int {
		return cmp.Or(cmp.Compare(a.Tile, b.Tile), cmp.Compare(a.ID, b.ID))
	})
}
