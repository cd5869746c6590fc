package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTileSet(t *testing.T) {
	set := NewTileSet()
	require.Len(t, set, TileCountAll)

	counts := make(map[EColor]int)
	ids := make(map[int]bool)
	for _, inst := range set {
		counts[inst.Tile.Color()]++
		assert.False(t, ids[inst.ID], "duplicate id %d", inst.ID)
		ids[inst.ID] = true
	}
	assert.Equal(t, 36, counts[ColorCharacter])
	assert.Equal(t, 36, counts[ColorBamboo])
	assert.Equal(t, 36, counts[ColorDot])
	assert.Equal(t, 16, counts[ColorWind])
	assert.Equal(t, 12, counts[ColorDragon])
	assert.Equal(t, 4, counts[ColorFlower])
	assert.Equal(t, 4, counts[ColorSeason])
	assert.Equal(t, 4, counts[ColorAnimal])

	total := 0
	for _, n := range AllTiles() {
		total += n
	}
	assert.Equal(t, TileCountAll, total)
}

func TestTileClassification(t *testing.T) {
	tests := []struct {
		name     string
		tile     Tile
		numbered bool
		honor    bool
		bonus    bool
		terminal bool
	}{
		{"1万", MakeNumbered(ColorCharacter, 1), true, false, false, true},
		{"5条", MakeNumbered(ColorBamboo, 5), true, false, false, false},
		{"9筒", MakeNumbered(ColorDot, 9), true, false, false, true},
		{"东", TileDong, false, true, false, false},
		{"白", TileBai, false, true, false, false},
		{"梅", TileMei, false, false, true, false},
		{"冬", TileWinter, false, false, true, false},
		{"蜈蚣", TileWugong, false, false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tile.Name())
			assert.Equal(t, tt.tile, nameToTile(tt.name))
			assert.Equal(t, tt.numbered, tt.tile.IsNumbered())
			assert.Equal(t, tt.honor, tt.tile.IsHonor())
			assert.Equal(t, tt.bonus, tt.tile.IsBonus())
			assert.Equal(t, tt.terminal, tt.tile.IsTerminal())
		})
	}
}

func TestPongDoubles(t *testing.T) {
	tests := []struct {
		name       string
		tile       Tile
		prevailing Wind
		seat       Wind
		want       int
	}{
		{"dragon", TileZhong, WindEast, WindSouth, 1},
		{"double wind", TileDong, WindEast, WindEast, 2},
		{"prevailing wind", TileDong, WindEast, WindWest, 1},
		{"seat wind", TileXi, WindEast, WindWest, 1},
		{"other wind", TileBei, WindEast, WindSouth, 0},
		{"numbered", MakeNumbered(ColorDot, 3), WindEast, WindEast, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tile.PongDoubles(tt.prevailing, tt.seat))
		})
	}
}

func TestBonusDoubles(t *testing.T) {
	assert.Equal(t, 1, TileMei.BonusDoubles(WindEast, WindEast))
	assert.Equal(t, 0, TileMei.BonusDoubles(WindEast, WindSouth))
	assert.Equal(t, 1, TileAutumn.BonusDoubles(WindEast, WindWest))
	assert.Equal(t, 1, TileCat.BonusDoubles(WindEast, WindNorth))
	assert.Equal(t, 0, TileZhong.BonusDoubles(WindEast, WindEast))
}

func TestNamesToTiles(t *testing.T) {
	tiles, err := namesToTiles("1万, 9筒,发,蜈蚣")
	require.NoError(t, err)
	assert.Equal(t, []Tile{MakeNumbered(ColorCharacter, 1), MakeNumbered(ColorDot, 9), TileFa, TileWugong}, tiles)

	_, err = namesToTiles("1万,10条")
	require.ErrorIs(t, err, ErrInvalidTileName)
}

func TestParseWind(t *testing.T) {
	assert.Equal(t, WindEast, ParseWind("East"))
	assert.Equal(t, WindNorth, ParseWind("north"))
	assert.Equal(t, SeatNull, ParseWind("None"))
	assert.Equal(t, WindSouth, WindEast.Next())
	assert.Equal(t, WindEast, WindNorth.Next())
	assert.Equal(t, []Wind{WindWest, WindNorth, WindEast, WindSouth}, OrderedSeatsFrom(WindWest))
}
