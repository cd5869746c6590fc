package mahjong

import (
	"io"
	"math/rand"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestHand 按指定手牌坐好四家，牌墙为剩余的牌(固定种子洗牌)
func newTestHand(t *testing.T, hands [NP4]string) *Hand {
	t.Helper()
	rule := DefaultRule()
	h := &Hand{
		id:             "test",
		prevailingWind: WindEast,
		rule:           rule,
		dealer:         NewDealer(rand.New(rand.NewSource(7)), rule.DeadWallTiles),
		logger:         testLogger(),
	}
	require.NoError(t, h.dealer.Initialize(nil))
	for w := range NP4 {
		h.seats[w] = newPlayData(h, Wind(w), takeTiles(t, h, hands[w]))
	}
	return h
}

// takeTiles 从牌墙中取出指定的牌
func takeTiles(t *testing.T, h *Hand, names string) []*TileInstance {
	t.Helper()
	values, err := namesToTiles(names)
	require.NoError(t, err)
	tiles := make([]*TileInstance, 0, len(values))
	for _, v := range values {
		idx := slices.IndexFunc(h.dealer.tileWall, func(inst *TileInstance) bool { return inst.Tile == v })
		require.GreaterOrEqual(t, idx, 0, "no %s left in wall", v)
		tiles = append(tiles, h.dealer.tileWall[idx])
		h.dealer.tileWall = slices.Delete(h.dealer.tileWall, idx, idx+1)
	}
	return tiles
}

// takeMeld 从牌墙取牌组成一个已亮出的面子
func takeMeld(t *testing.T, h *Hand, seat Wind, meld Meld) *MeldInstance {
	t.Helper()
	tiles := takeTiles(t, h, TilesName(meld.Tiles()))
	m := &MeldInstance{Meld: meld, Tiles: tiles}
	h.seats[seat].addMeld(m)
	return m
}

// startAt 从某家出牌开始
func startAt(h *Hand, seat Wind) {
	h.enterPhase(newToDiscardPhase(h, seat, nil))
	h.advance()
}

func instances(t *testing.T, names string) []*TileInstance {
	t.Helper()
	values, err := namesToTiles(names)
	require.NoError(t, err)
	tiles := make([]*TileInstance, len(values))
	for i, v := range values {
		tiles[i] = &TileInstance{ID: 1000 + i, Tile: v}
	}
	return tiles
}

func findTile(t *testing.T, p *PlayData, name string) *TileInstance {
	t.Helper()
	tile := nameToTile(name)
	for _, inst := range p.handTiles {
		if inst.Tile == tile {
			return inst
		}
	}
	require.Failf(t, "tile not in hand", "%s has no %s", p.wind, name)
	return nil
}

func claimMeld(t *testing.T, h *Hand, seat Wind, kind MeldKind, lowest string, discarded *TileInstance) *Action {
	t.Helper()
	p := h.Seat(seat)
	meld := Meld{Kind: kind, Tile: nameToTile(lowest)}
	var tiles []*TileInstance
	used := []*TileInstance{discarded}
	for _, v := range meld.Tiles() {
		if v == discarded.Tile && !slices.Contains(tiles, discarded) {
			tiles = append(tiles, discarded)
			continue
		}
		idx := slices.IndexFunc(p.handTiles, func(inst *TileInstance) bool {
			return inst.Tile == v && !slices.Contains(used, inst)
		})
		require.GreaterOrEqual(t, idx, 0, "%s has no %s", seat, v)
		tiles = append(tiles, p.handTiles[idx])
		used = append(used, p.handTiles[idx])
	}
	return NewFormMeldAction(seat, &MeldInstance{Meld: meld, Tiles: tiles}, discarded)
}
