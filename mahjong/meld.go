package mahjong

import (
	"strings"
)

// MeldKind 面子类型
type MeldKind int

const (
	MeldChow    MeldKind = iota // 吃
	MeldPong                    // 碰
	MeldKong                    // 杠
	MeldEyePair                 // 将
)

var meldKindNames = []string{"Chow", "Pong", "Kong", "Eye Pair"}

func (k MeldKind) String() string {
	if k < MeldChow || k > MeldEyePair {
		return "Unknown"
	}
	return meldKindNames[k]
}

// Size 面子包含的牌数
func (k MeldKind) Size() int {
	switch k {
	case MeldKong:
		return 4
	case MeldEyePair:
		return 2
	default:
		return 3
	}
}

// Meld 面子的牌值形态，吃以最小的那张牌为键
type Meld struct {
	Kind MeldKind
	Tile Tile
}

func NewChow(lowest Tile) Meld { return Meld{Kind: MeldChow, Tile: lowest} }
func NewPong(tile Tile) Meld { return Meld{Kind: MeldPong, Tile: tile} }
func NewKong(tile Tile) Meld { return Meld{Kind: MeldKong, Tile: tile} }
func NewEyePair(tile Tile) Meld { return Meld{Kind: MeldEyePair, Tile: tile} }

// Tiles 展开成具体牌值
func (m Meld) Tiles() []Tile {
	if m.Kind == MeldChow {
		return []Tile{m.Tile, m.Tile + 0x10, m.Tile + 0x20}
	}
	tiles := make([]Tile, m.Kind.Size())
	for i := range tiles {
		tiles[i] = m.Tile
	}
	return tiles
}

// IsPongLike 碰或杠
// IsValid 吃只能是同一花色的连续三张数牌
func (m Meld) IsValid() bool {
	if m.Kind == MeldChow {
		return m.Tile.IsNumbered() && m.Tile.Number() <= 7
	}
	return m.Tile.IsValid()
}

func (m Meld) IsPongLike() bool {
	return m.Kind == MeldPong || m.Kind == MeldKong
}

func (m Meld) String() string {
	return m.Kind.String() + "(" + TilesName(m.Tiles()) + ")"
}

// MeldInstance 绑定到具体实体牌的面子
type MeldInstance struct {
	Meld
	Tiles     []*TileInstance
	Concealed bool
}

func newMeldInstance(meld Meld, tiles []*TileInstance) *MeldInstance {
	return &MeldInstance{Meld: meld, Tiles: tiles}
}

// Contains 是否包含该实体牌
func (m *MeldInstance) Contains(tile *TileInstance) bool {
	for _, t := range m.Tiles {
		if t == tile {
			return true
		}
	}
	return false
}

func (m *MeldInstance) String() string {
	names := make([]string, len(m.Tiles))
	for i, t := range m.Tiles {
		names[i] = t.String()
	}
	return m.Kind.String() + "[" + strings.Join(names, " ") + "]"
}

func meldsString(melds []*MeldInstance) string {
	names := make([]string, len(melds))
	for i, m := range melds {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
