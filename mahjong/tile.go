package mahjong

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	TileNull   Tile = -1
	TileInf    Tile = MakeTile(ColorEnd, 0)    // 无效牌
	TileZhong  Tile = MakeTile(ColorDragon, 0) // 中
	TileFa     Tile = MakeTile(ColorDragon, 1) // 发
	TileBai    Tile = MakeTile(ColorDragon, 2) // 白
	TileDong   Tile = MakeTile(ColorWind, 0)   // 东
	TileNan    Tile = MakeTile(ColorWind, 1)   // 南
	TileXi     Tile = MakeTile(ColorWind, 2)   // 西
	TileBei    Tile = MakeTile(ColorWind, 3)   // 北
	TileMei    Tile = MakeTile(ColorFlower, 0) // 梅
	TileLan    Tile = MakeTile(ColorFlower, 1) // 兰
	TileZhu    Tile = MakeTile(ColorFlower, 2) // 竹
	TileJu     Tile = MakeTile(ColorFlower, 3) // 菊
	TileSpring Tile = MakeTile(ColorSeason, 0) // 春
	TileSummer Tile = MakeTile(ColorSeason, 1) // 夏
	TileAutumn Tile = MakeTile(ColorSeason, 2) // 秋
	TileWinter Tile = MakeTile(ColorSeason, 3) // 冬
	TileCat    Tile = MakeTile(ColorAnimal, 0) // 猫
	TileMouse  Tile = MakeTile(ColorAnimal, 1) // 鼠
	TileCock   Tile = MakeTile(ColorAnimal, 2) // 鸡
	TileWugong Tile = MakeTile(ColorAnimal, 3) // 蜈蚣
)

// 静态表
var namedTileMap = map[string]Tile{
	// 风
	"东": TileDong,
	"南": TileNan,
	"西": TileXi,
	"北": TileBei,
	// 箭
	"中": TileZhong,
	"发": TileFa,
	"白": TileBai,
	// 花
	"梅": TileMei,
	"兰": TileLan,
	"竹": TileZhu,
	"菊": TileJu,
	// 季
	"春": TileSpring,
	"夏": TileSummer,
	"秋": TileAutumn,
	"冬": TileWinter,
	// 动物
	"猫":  TileCat,
	"鼠":  TileMouse,
	"鸡":  TileCock,
	"蜈蚣": TileWugong,
}

// 静态表：最后一个 rune -> 颜色
var lastRuneToColor = map[rune]EColor{
	'万': ColorCharacter,
	'条': ColorBamboo,
	'筒': ColorDot,
}

// Tile 牌值，同值的牌可以有多张实体
type Tile int32

func MakeTile(color EColor, point int) Tile {
	return Tile((int(color)<<8 | (point << 4) | 1))
}

// MakeNumbered 数牌，number取1-9
func MakeNumbered(color EColor, number int) Tile {
	return MakeTile(color, number-1)
}

func WindTile(w Wind) Tile {
	return MakeTile(ColorWind, int(w))
}

func (t Tile) Color() EColor {
	return EColor((t >> 8) & 0x0F)
}

func (t Tile) Point() int {
	return int((t >> 4) & 0x0F)
}

func (t Tile) Info() (EColor, int) {
	return t.Color(), t.Point()
}

// Number 数牌点数(1-9)
func (t Tile) Number() int {
	return t.Point() + 1
}

func (t Tile) IsValid() bool {
	return t > 0 && t < TileInf
}

func (t Tile) IsNumbered() bool { // 数牌
	return t.IsValid() && t.Color() >= ColorCharacter && t.Color() <= ColorDot
}

func (t Tile) IsHonor() bool { // 字牌
	return t.IsValid() && (t.Color() == ColorWind || t.Color() == ColorDragon)
}

func (t Tile) IsWind() bool {
	return t.IsValid() && t.Color() == ColorWind
}

func (t Tile) IsDragon() bool { // 箭牌
	return t.IsValid() && t.Color() == ColorDragon
}

func (t Tile) IsTerminal() bool { // 幺九
	return t.IsNumbered() && (t.Point() == 0 || t.Point() == 8)
}

func (t Tile) IsBonus() bool { // 花牌+季牌+动物
	switch t.Color() {
	case ColorFlower, ColorSeason, ColorAnimal:
		return t.IsValid()
	default:
		return false
	}
}

// PongDoubles 字牌刻子的番数，依赖圈风与门风
func (t Tile) PongDoubles(prevailing, seat Wind) int {
	switch t.Color() {
	case ColorDragon:
		return 1
	case ColorWind:
		doubles := 0
		if Wind(t.Point()) == prevailing {
			doubles++
		}
		if Wind(t.Point()) == seat {
			doubles++
		}
		return doubles
	default:
		return 0
	}
}

// BonusDoubles 花牌的番数，花/季只算本门风
func (t Tile) BonusDoubles(prevailing, seat Wind) int {
	switch t.Color() {
	case ColorFlower, ColorSeason:
		if Wind(t.Point()) == seat {
			return 1
		}
		return 0
	case ColorAnimal:
		return 1
	default:
		return 0
	}
}

func (t Tile) Name() string {
	c, p := t.Info()
	switch c {
	case ColorCharacter:
		return strconv.Itoa(p+1) + "万"
	case ColorBamboo:
		return strconv.Itoa(p+1) + "条"
	case ColorDot:
		return strconv.Itoa(p+1) + "筒"
	case ColorWind:
		names := []string{"东", "南", "西", "北"}
		return names[p]
	case ColorDragon:
		names := []string{"中", "发", "白"}
		return names[p]
	case ColorFlower:
		names := []string{"梅", "兰", "竹", "菊"}
		return names[p]
	case ColorSeason:
		names := []string{"春", "夏", "秋", "冬"}
		return names[p]
	case ColorAnimal:
		names := []string{"猫", "鼠", "鸡", "蜈蚣"}
		return names[p]
	default:
		return ""
	}
}

func (t Tile) String() string {
	return t.Name()
}

func TilesName(tiles []Tile) string {
	var tileNames []string
	for _, tile := range tiles {
		tileNames = append(tileNames, tile.Name())
	}
	return strings.Join(tileNames, ", ")
}

// AllTiles 新加坡麻将全部牌值及张数
func AllTiles() map[Tile]int {
	tiles := make(map[Tile]int)
	for _, tile := range sortedTileValues() {
		tiles[tile] = SameTileCountByColor[tile.Color()]
	}
	return tiles
}

// NumberedTiles 全部数牌牌值，按花色、点数排序
func NumberedTiles() []Tile {
	tiles := make([]Tile, 0, 27)
	for c := ColorCharacter; c <= ColorDot; c++ {
		for p := range PointCountByColor[c] {
			tiles = append(tiles, MakeTile(c, p))
		}
	}
	return tiles
}

func sortedTileValues() []Tile {
	tiles := make([]Tile, 0, 42)
	for c := ColorBegin; c < ColorEnd; c++ {
		for p := range PointCountByColor[c] {
			tiles = append(tiles, MakeTile(c, p))
		}
	}
	return tiles
}

func namesToTiles(names string) ([]Tile, error) {
	parts := strings.Split(names, ",")
	res := make([]Tile, 0, len(parts))
	for _, name := range parts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t := nameToTile(name)
		if t == TileNull {
			return nil, newInvalidTileName(name)
		}
		res = append(res, t)
	}
	return res, nil
}

func nameToTile(name string) Tile {
	if name == "" {
		return TileNull
	}
	if t, ok := namedTileMap[name]; ok {
		return t
	}

	r, size := utf8.DecodeLastRuneInString(name)
	color, ok := lastRuneToColor[r]
	if !ok {
		return TileNull
	}
	prefix := name[:len(name)-size]
	num, err := strconv.Atoi(prefix)
	if err != nil || num < 1 || num > 9 {
		return TileNull
	}
	return MakeNumbered(color, num)
}

// TileInstance 一张实体牌，同值的多张牌以指针区分
type TileInstance struct {
	ID   int
	Tile Tile
}

func (t *TileInstance) String() string {
	return t.Tile.Name() + "#" + strconv.Itoa(t.ID)
}

// NewTileSet 按固定顺序生成全部148张实体牌
func NewTileSet() []*TileInstance {
	set := make([]*TileInstance, 0, TileCountAll)
	for _, tile := range sortedTileValues() {
		for range SameTileCountByColor[tile.Color()] {
			set = append(set, &TileInstance{ID: len(set), Tile: tile})
		}
	}
	return set
}

func tileValues(tiles []*TileInstance) []Tile {
	values := make([]Tile, len(tiles))
	for i, t := range tiles {
		values[i] = t.Tile
	}
	return values
}
