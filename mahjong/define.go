package mahjong

import "strings"

// Wind 门风/圈风，同时作为座位号
type Wind int32

const (
	SeatNull Wind = -1 // 无座位（系统动作、流局）
	WindEast Wind = iota - 1
	WindSouth
	WindWest
	WindNorth
	WindEnd
)

const NP4 = int(WindEnd)

var windNames = [NP4]string{"East", "South", "West", "North"}

func (w Wind) IsValid() bool {
	return w >= WindEast && w < WindEnd
}

// Next 下家
func (w Wind) Next() Wind {
	return GetNextSeat(w, 1)
}

func (w Wind) String() string {
	if !w.IsValid() {
		return "None"
	}
	return windNames[w]
}

// ParseWind 按名称解析风位，不区分大小写，未知名称返回SeatNull
func ParseWind(name string) Wind {
	for i, n := range windNames {
		if strings.EqualFold(n, name) {
			return Wind(i)
		}
	}
	return SeatNull
}

func GetNextSeat(seat Wind, step int) Wind {
	return Wind((int(seat) + step) % NP4)
}

// OrderedSeatsFrom 从seat开始按出牌顺序排列的四个座位
func OrderedSeatsFrom(seat Wind) []Wind {
	seats := make([]Wind, NP4)
	for i := range NP4 {
		seats[i] = GetNextSeat(seat, i)
	}
	return seats
}

const (
	TileCountInitBanker = 14
	TileCountInitNormal = 13
	TileCountAll        = 148
)

type EColor int

const (
	ColorUndefined EColor = -1
	ColorCharacter EColor = iota - 1 // 万
	ColorBamboo                      // 条
	ColorDot                         // 筒
	ColorWind                        // 风牌
	ColorDragon                      // 箭牌
	ColorFlower                      // 花牌
	ColorSeason                      // 季牌
	ColorAnimal                      // 动物牌
	ColorEnd
	ColorBegin = ColorCharacter
)

var PointCountByColor = [ColorEnd]int{9, 9, 9, 4, 3, 4, 4, 4}
var SameTileCountByColor = [ColorEnd]int{4, 4, 4, 4, 4, 1, 1, 1}

// WinType 胡牌方式
type WinType int

const (
	WinTypeSelfDraw WinType = iota // 自摸
	WinTypeDiscard                 // 点炮
)

func (t WinType) String() string {
	if t == WinTypeSelfDraw {
		return "SelfDraw"
	}
	return "Discard"
}

type ScoreType int //算分方式

const (
	ScoreTypeNatural  ScoreType = iota // 自然分
	ScoreTypeMinScore                  // 积分最小化
	ScoreTypePositive                  // 超出玩家带入的输分由系统支出
	ScoreTypeJustWin                   // 只赢不输
)
