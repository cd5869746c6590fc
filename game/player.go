package game

import (
	"github.com/kevin-chtw/tw_sgmahjong/mahjong"
)

const (
	PlayerStatusUnEnter = iota // 玩家状态：未进入
	PlayerStatusEnter          // 玩家状态：进入
	PlayerStatusPlaying        // 玩家状态：游戏中
)

// Player 表示桌上的玩家
type Player struct {
	id     string       // 玩家唯一ID
	Seat   mahjong.Wind // 座位号
	Status int          // 玩家状态
	score  int64        // 玩家积分
	online bool         // 玩家是否在线
}

// NewPlayer 创建新玩家实例
func NewPlayer(id string, seat mahjong.Wind) *Player {
	return &Player{
		id:     id,
		Seat:   seat,
		Status: PlayerStatusUnEnter,
		online: true,
	}
}

func (p *Player) ID() string {
	return p.id
}

// AddScore 增加玩家积分
func (p *Player) AddScore(delta int64) {
	p.score += delta
}

func (p *Player) GetScore() int64 {
	return p.score
}

func (p *Player) IsOnline() bool {
	return p.online
}
