package mahjong

import (
	"errors"
	"fmt"
	"maps"
)

// IllegalActionError 非法操作，核心唯一的错误类型
type IllegalActionError struct {
	Code    string         // 错误代码
	Message string         // 错误消息
	Context map[string]any // 错误上下文
}

func (e *IllegalActionError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s %v", e.Code, e.Message, e.Context)
}

// Is 按错误代码匹配，带上下文的副本仍然等于原哨兵
func (e *IllegalActionError) Is(target error) bool {
	t, ok := target.(*IllegalActionError)
	return ok && t.Code == e.Code
}

func newIllegalActionError(code, message string) *IllegalActionError {
	return &IllegalActionError{Code: code, Message: message}
}

// WithContext 返回附加了上下文的副本，哨兵本身不变
func (e *IllegalActionError) WithContext(key string, value any) *IllegalActionError {
	c := &IllegalActionError{Code: e.Code, Message: e.Message, Context: make(map[string]any, len(e.Context)+1)}
	maps.Copy(c.Context, e.Context)
	c.Context[key] = value
	return c
}

// 座位与阶段
var (
	ErrNotYourTurn     = newIllegalActionError("NOT_YOUR_TURN", "it is not your turn yet")
	ErrInvalidAction   = newIllegalActionError("INVALID_ACTION", "action not allowed in current phase")
	ErrWindowClosed    = newIllegalActionError("WINDOW_CLOSED", "window of opportunity already closed")
	ErrOwnDiscard      = newIllegalActionError("OWN_DISCARD", "cannot reclaim your own discarded tile")
	ErrChowNotNextSeat = newIllegalActionError("CHOW_NOT_NEXT_SEAT", "chow only from the preceding seat's discard")
	ErrNotWinner       = newIllegalActionError("NOT_WINNER", "only the winner can start the next hand")
	ErrHandOver        = newIllegalActionError("HAND_OVER", "hand is over")
)

// 牌相关
var (
	ErrTileNotInHand        = newIllegalActionError("TILE_NOT_IN_HAND", "tile not in hand")
	ErrBonusTileNotRevealed = newIllegalActionError("BONUS_TILE_NOT_REVEALED", "bonus tile must be revealed before discarding")
	ErrPatternUnsatisfied   = newIllegalActionError("PATTERN_UNSATISFIED", "tiles do not form the required pattern")
	ErrWrongTile            = newIllegalActionError("WRONG_TILE", "tile is not the one on offer")
)

// 预设牌墙配置错误，不属于操作错误
var (
	ErrInvalidTileName = errors.New("unknown tile name")
	ErrPresetOverflow  = errors.New("preset uses more tiles than the set holds")
)

func newInvalidTileName(name string) error {
	return fmt.Errorf("%w: %q", ErrInvalidTileName, name)
}
