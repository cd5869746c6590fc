package mahjong

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var windowHands = [NP4]string{
	WindEast:  "3万,3万,7万,8万,9万,4条,4条,6筒,7筒,8筒,西,西,中",
	WindSouth: "1万,2万,5万,6万,9万,9万,9筒,9筒,发,发,白,白,中",
	WindWest:  "3万,1条,2条,3条,4条,5条,6条,7条,8条,9条,1筒,2筒,3筒,东",
	WindNorth: "4万,5万,1条,1条,2筒,2筒,4筒,5筒,6筒,南,南,北,北",
}

var mahjongHands = [NP4]string{
	WindEast:  "1万,2万,4万,5万,6万,7万,8万,9万,西,西,西,中,中",
	WindSouth: "3万,3万,9筒,9筒,发,发,白,白,中,4筒,5筒,6筒,7筒",
	WindWest:  "3万,1条,2条,3条,4条,5条,6条,7条,8条,9条,1筒,2筒,3筒,白",
	WindNorth: "1万,2万,4万,5万,6万,7万,8万,9万,东,东,东,南,南",
}

// moveInWall 把牌墙中的某张牌移到头部或尾部
func moveInWall(t *testing.T, h *Hand, name string, top bool) *TileInstance {
	t.Helper()
	tile := nameToTile(name)
	idx := slices.IndexFunc(h.dealer.tileWall, func(inst *TileInstance) bool { return inst.Tile == tile })
	require.GreaterOrEqual(t, idx, 0)
	inst := h.dealer.tileWall[idx]
	h.dealer.tileWall = slices.Delete(h.dealer.tileWall, idx, idx+1)
	if top {
		h.dealer.tileWall = append([]*TileInstance{inst}, h.dealer.tileWall...)
	} else {
		h.dealer.tileWall = append(h.dealer.tileWall, inst)
	}
	return inst
}

func discardFromWest(t *testing.T, h *Hand, name string) (*WindowPhase, *TileInstance) {
	t.Helper()
	startAt(h, WindWest)
	tile := findTile(t, h.Seat(WindWest), name)
	require.NoError(t, h.TryExecuteAction(NewDiscardAction(WindWest, tile)))
	w, ok := h.CurrentPhase().(*WindowPhase)
	require.True(t, ok, "expected window, got %s", h.CurrentPhase().Name())
	return w, tile
}

func TestChowOnlyFromNextSeat(t *testing.T) {
	h := newTestHand(t, windowHands)
	_, tile := discardFromWest(t, h, "3万")

	err := h.TryExecuteAction(claimMeld(t, h, WindSouth, MeldChow, "1万", tile))
	require.ErrorIs(t, err, ErrChowNotNextSeat)
	assert.True(t, h.CanExecuteAction(claimMeld(t, h, WindNorth, MeldChow, "3万", tile)))
}

func TestWindowRejects(t *testing.T) {
	h := newTestHand(t, windowHands)
	_, tile := discardFromWest(t, h, "3万")

	require.ErrorIs(t, h.TryExecuteAction(NewSkipAction(WindWest)), ErrOwnDiscard)
	require.ErrorIs(t, h.TryExecuteAction(NewMahjongAction(WindEast, tile)), ErrPatternUnsatisfied)
	require.ErrorIs(t, h.TryExecuteAction(NewDiscardAction(WindNorth, h.Seat(WindNorth).handTiles[0])), ErrInvalidAction)

	other := h.Seat(WindEast).handTiles[0]
	require.ErrorIs(t, h.TryExecuteAction(NewMahjongAction(WindEast, other)), ErrWrongTile)
}

func TestWindowPriority(t *testing.T) {
	h := newTestHand(t, windowHands)
	w, tile := discardFromWest(t, h, "3万")
	east := h.Seat(WindEast)
	handBefore := len(east.handTiles)

	pong := claimMeld(t, h, WindEast, MeldPong, "3万", tile)
	require.NoError(t, h.TryExecuteAction(claimMeld(t, h, WindNorth, MeldChow, "3万", tile)))
	require.NoError(t, h.TryExecuteAction(pong))
	assert.Equal(t, []Wind{WindSouth}, w.Pending())
	require.NoError(t, h.TryExecuteAction(NewSkipAction(WindSouth)))

	assert.True(t, w.IsClosed())
	assert.Same(t, pong, w.Selected())
	phase := h.CurrentPhase()
	assert.Equal(t, PhaseToDiscard, phase.Kind())
	assert.Equal(t, WindEast, phase.Seat())

	assert.Len(t, east.handTiles, handBefore-(len(pong.Meld.Tiles)-1))
	require.Len(t, east.melds, 1)
	assert.Equal(t, MeldPong, east.melds[0].Kind)
	assert.True(t, east.melds[0].Contains(tile))
	assert.Empty(t, h.DiscardPile())
	assert.Equal(t, 14, east.TileCount())
	assert.Equal(t, TileCountAll, h.TileCount())

	require.ErrorIs(t, h.TryExecuteAction(NewSelfDrawMahjongAction(WindEast)), ErrInvalidAction)
}

func TestWindowResolveIdempotent(t *testing.T) {
	h := newTestHand(t, windowHands)
	w, tile := discardFromWest(t, h, "3万")

	require.NoError(t, h.TryExecuteAction(NewSkipAction(WindNorth)))
	require.NoError(t, h.TryExecuteAction(claimMeld(t, h, WindEast, MeldPong, "3万", tile)))
	require.NoError(t, h.TryExecuteAction(NewCloseWindowAction()))

	require.NoError(t, w.resolve())
	assert.Len(t, h.Seat(WindEast).melds, 1)
	assert.ErrorIs(t, w.errorForAction(NewSkipAction(WindSouth)), ErrWindowClosed)
	assert.ErrorIs(t, w.errorForAction(NewCloseWindowAction()), ErrWindowClosed)
	assert.Equal(t, TileCountAll, h.TileCount())
}

func TestWindowCloseWithoutClaim(t *testing.T) {
	h := newTestHand(t, windowHands)
	w, tile := discardFromWest(t, h, "3万")
	top := moveInWall(t, h, "5筒", true)

	require.NoError(t, h.TryExecuteAction(NewSkipAction(WindEast)))
	require.NoError(t, h.TryExecuteAction(NewCloseWindowAction()))

	assert.Nil(t, w.Selected())
	phase, ok := h.CurrentPhase().(*ToDiscardPhase)
	require.True(t, ok)
	assert.Equal(t, WindNorth, phase.Seat())
	assert.Same(t, top, phase.LatestDrawn())
	assert.Equal(t, 14, h.Seat(WindNorth).TileCount())
	assert.Equal(t, []*TileInstance{tile}, h.DiscardPile())
	assert.Equal(t, TileCountAll, h.TileCount())
}

func TestValidWindowActions(t *testing.T) {
	h := newTestHand(t, windowHands)
	w, _ := discardFromWest(t, h, "3万")

	kinds := func(actions []*Action) []string {
		var names []string
		for _, a := range actions {
			name := a.Kind.String()
			if a.Meld != nil {
				name = a.Meld.Kind.String()
			}
			names = append(names, name)
		}
		return names
	}
	assert.Equal(t, []string{"Chow", "Pass"}, kinds(h.ValidWindowActions(WindNorth, w)))
	assert.Equal(t, []string{"Pong", "Pass"}, kinds(h.ValidWindowActions(WindEast, w)))
	assert.Equal(t, []string{"Pass"}, kinds(h.ValidWindowActions(WindSouth, w)))
	assert.Empty(t, h.ValidWindowActions(WindWest, w))
}

func TestMahjongTieBreak(t *testing.T) {
	for _, order := range [][]Wind{
		{WindEast, WindSouth, WindNorth},
		{WindNorth, WindEast, WindSouth},
		{WindSouth, WindNorth, WindEast},
	} {
		h := newTestHand(t, mahjongHands)
		w, tile := discardFromWest(t, h, "3万")
		for _, seat := range order {
			a := NewMahjongAction(seat, tile)
			if seat == WindSouth {
				a = claimMeld(t, h, WindSouth, MeldPong, "3万", tile)
			}
			require.NoError(t, h.TryExecuteAction(a), "seat %s", seat)
		}

		require.Equal(t, WindNorth, w.Selected().Seat, "nearest seat after discarder wins ties")
		end, ok := h.CurrentPhase().(*EndOfHandPhase)
		require.True(t, ok)
		assert.Equal(t, WindNorth, end.Winner())

		wh := h.WinningHand()
		require.NotNil(t, wh)
		assert.Equal(t, WindWest, wh.From)
		assert.Equal(t, WinTypeDiscard, wh.Type)
		assert.Same(t, tile, wh.WinningTile)
		assert.Empty(t, h.Seat(WindNorth).handTiles)
		assert.Len(t, h.Seat(WindNorth).melds, 5)
		assert.Empty(t, h.DiscardPile())
		assert.Equal(t, TileCountAll, h.TileCount())
	}
}

func TestEndOfHandNextHand(t *testing.T) {
	finished := 0
	h := newTestHand(t, mahjongHands)
	h.onFinish = func() { finished++ }
	_, tile := discardFromWest(t, h, "3万")
	require.NoError(t, h.TryExecuteAction(NewMahjongAction(WindNorth, tile)))
	require.NoError(t, h.TryExecuteAction(NewCloseWindowAction()))

	require.ErrorIs(t, h.TryExecuteAction(NewNextHandAction(WindEast)), ErrNotWinner)
	require.ErrorIs(t, h.TryExecuteAction(NewDiscardAction(WindNorth, tile)), ErrInvalidAction)
	require.NoError(t, h.TryExecuteAction(NewNextHandAction(WindNorth)))
	assert.True(t, h.IsFinished())
	assert.Equal(t, 1, finished)
	require.ErrorIs(t, h.TryExecuteAction(NewNextHandAction(WindNorth)), ErrHandOver)
	assert.Equal(t, 1, finished)
}

func TestSelfDrawMahjong(t *testing.T) {
	h := newTestHand(t, mahjongHands)
	_, _ = discardFromWest(t, h, "白")
	drawn := moveInWall(t, h, "3万", true)
	for _, seat := range []Wind{WindNorth, WindEast, WindSouth} {
		require.NoError(t, h.TryExecuteAction(NewSkipAction(seat)))
	}

	phase, ok := h.CurrentPhase().(*ToDiscardPhase)
	require.True(t, ok)
	require.Same(t, drawn, phase.LatestDrawn())
	require.ErrorIs(t, h.TryExecuteAction(NewSelfDrawMahjongAction(WindEast)), ErrNotYourTurn)
	require.NoError(t, h.TryExecuteAction(NewSelfDrawMahjongAction(WindNorth)))

	wh := h.WinningHand()
	require.NotNil(t, wh)
	assert.Equal(t, WinTypeSelfDraw, wh.Type)
	assert.Equal(t, SeatNull, wh.From)
	assert.Same(t, drawn, wh.WinningTile)
	assert.Len(t, wh.PreWinHand, 13)
	assert.Equal(t, PhaseEndOfHand, h.CurrentPhase().Kind())
	assert.Equal(t, TileCountAll, h.TileCount())
}

func TestBonusTileMustBeRevealedBeforeDiscard(t *testing.T) {
	hands := windowHands
	hands[WindWest] = "3万,1条,2条,3条,4条,5条,6条,7条,8条,9条,1筒,2筒,3筒,梅"
	h := newTestHand(t, hands)
	startAt(h, WindWest)
	west := h.Seat(WindWest)
	replacement := moveInWall(t, h, "9条", false)

	require.ErrorIs(t, h.TryExecuteAction(NewDiscardAction(WindWest, findTile(t, west, "3万"))), ErrBonusTileNotRevealed)
	require.ErrorIs(t, h.TryExecuteAction(NewDiscardAction(WindWest, findTile(t, west, "梅"))), ErrBonusTileNotRevealed)

	require.NoError(t, h.TryExecuteAction(NewRevealBonusTileAction(WindWest, findTile(t, west, "梅"))))
	phase, ok := h.CurrentPhase().(*ToDiscardPhase)
	require.True(t, ok)
	assert.Same(t, replacement, phase.LatestDrawn())
	assert.Len(t, west.BonusTiles(), 1)
	assert.Equal(t, 14, west.TileCount())

	require.NoError(t, h.TryExecuteAction(NewDiscardAction(WindWest, findTile(t, west, "3万"))))
	assert.Equal(t, PhaseWindow, h.CurrentPhase().Kind())
	assert.Equal(t, TileCountAll, h.TileCount())
}

func TestPostDrawRounds(t *testing.T) {
	hands := windowHands
	hands[WindEast] = "梅,竹,3万,3万,7万,8万,9万,4条,4条,6筒,7筒,8筒,西,西"
	h := newTestHand(t, hands)
	moveInWall(t, h, "1万", false)
	lan := moveInWall(t, h, "兰", false)
	h.enterPhase(newPostDrawPhase(h, WindEast, 0))
	h.advance()
	east := h.Seat(WindEast)

	require.ErrorIs(t, h.TryExecuteAction(NewRevealBonusTileAction(WindSouth, findTile(t, east, "梅"))), ErrNotYourTurn)
	require.NoError(t, h.TryExecuteAction(NewRevealBonusTileAction(WindEast, findTile(t, east, "梅"))))
	require.True(t, east.HasTile(lan))
	require.ErrorIs(t, h.TryExecuteAction(NewRevealBonusTileAction(WindEast, lan)), ErrInvalidAction)
	require.NoError(t, h.TryExecuteAction(NewRevealBonusTileAction(WindEast, findTile(t, east, "竹"))))

	phase, ok := h.CurrentPhase().(*PostDrawPhase)
	require.True(t, ok, "got %s", h.CurrentPhase().Name())
	assert.Equal(t, WindEast, phase.Seat())
	assert.Equal(t, 1, phase.Round())
	assert.Equal(t, []*TileInstance{lan}, phase.TilesToShow())

	moveInWall(t, h, "2万", false)
	require.NoError(t, h.TryExecuteAction(NewRevealBonusTileAction(WindEast, lan)))
	assert.Equal(t, PhaseToDiscard, h.CurrentPhase().Kind())
	assert.Equal(t, WindEast, h.CurrentPhase().Seat())
	assert.Len(t, east.BonusTiles(), 3)
	assert.Equal(t, 14, east.TileCount())
	assert.Equal(t, TileCountAll, h.TileCount())
}

// playToEnd 随机选择合法操作直到一局结束，每一步检查牌数守恒
func playToEnd(t *testing.T, h *Hand, rng *rand.Rand, claim bool) {
	t.Helper()
	for step := 0; step < 2000; step++ {
		require.Equal(t, TileCountAll, h.TileCount(), "step %d", step)
		switch phase := h.CurrentPhase().(type) {
		case *EndOfHandPhase:
			return
		case *WindowPhase:
			for _, w := range OrderedSeatsFrom(WindEast) {
				require.Equal(t, 13, h.Seat(w).TileCount(), "seat %s", w)
			}
			seat := phase.Pending()[0]
			actions := h.ValidWindowActions(seat, phase)
			require.NotEmpty(t, actions)
			a := actions[len(actions)-1]
			if claim {
				a = actions[rng.Intn(len(actions))]
			}
			require.NoError(t, h.TryExecuteAction(a))
		default:
			actions := h.ValidTurnActions(phase.Seat())
			require.NotEmpty(t, actions, "no action in %s", phase.Name())
			if !claim {
				actions = slices.DeleteFunc(actions, func(a *Action) bool { return a.Kind == ActionSelfDrawMahjong })
			}
			require.NoError(t, h.TryExecuteAction(actions[rng.Intn(len(actions))]))
		}
	}
	require.Fail(t, "hand did not end")
}

func TestTileConservation(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		h, err := NewHand(WindEast, DefaultRule(), WithRand(rng), WithLogger(testLogger()))
		require.NoError(t, err)
		assert.Equal(t, 14, h.Seat(WindEast).TileCount())
		playToEnd(t, h, rng, true)
		assert.Equal(t, TileCountAll, h.TileCount())
	}
}

func TestWallExhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h, err := NewHand(WindEast, DefaultRule(), WithRand(rng), WithLogger(testLogger()))
	require.NoError(t, err)
	playToEnd(t, h, rng, false)

	end, ok := h.CurrentPhase().(*EndOfHandPhase)
	require.True(t, ok)
	assert.Equal(t, SeatNull, end.Winner())
	assert.Nil(t, h.WinningHand())
	assert.False(t, h.Dealer().CanDraw())

	require.NoError(t, h.TryExecuteAction(NewNextHandAction(WindSouth)))
	assert.True(t, h.IsFinished())
}

func TestRoundStartsNextHand(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r, err := NewRound(WindSouth, DefaultRule(), WithRand(rng), WithLogger(testLogger()))
	require.NoError(t, err)
	first := r.CurrentHand()
	assert.Equal(t, WindSouth, first.PrevailingWind())
	assert.Equal(t, 1, r.HandCount())

	playToEnd(t, first, rng, false)
	require.NoError(t, first.TryExecuteAction(NewNextHandAction(WindEast)))

	second := r.CurrentHand()
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, r.HandCount())
	assert.Equal(t, WindSouth, second.PrevailingWind())
	assert.Equal(t, TileCountAll, second.TileCount())
}

func TestRevealedTiles(t *testing.T) {
	h := newTestHand(t, windowHands)
	_, tile := discardFromWest(t, h, "3万")
	assert.Equal(t, []*TileInstance{tile}, h.RevealedTiles())

	pong := claimMeld(t, h, WindEast, MeldPong, "3万", tile)
	require.NoError(t, h.TryExecuteAction(pong))
	require.NoError(t, h.TryExecuteAction(NewCloseWindowAction()))
	assert.ElementsMatch(t, pong.Meld.Tiles, h.RevealedTiles())
}

func TestHonorChowRejected(t *testing.T) {
	tests := []struct {
		name    string
		hands   [NP4]string
		discard string
		lowest  string
	}{
		{"winds", [NP4]string{WindWest: "西,1万", WindNorth: "南,北,5筒"}, "西", "南"},
		{"dragons", [NP4]string{WindWest: "发,1万", WindNorth: "中,白,5筒"}, "发", "中"},
		{"past nine", [NP4]string{WindWest: "9万,1万", WindNorth: "8万,5筒"}, "9万", "8万"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHand(t, tt.hands)
			w, tile := discardFromWest(t, h, tt.discard)
			p := h.Seat(WindNorth)
			meld := Meld{Kind: MeldChow, Tile: nameToTile(tt.lowest)}
			var tiles []*TileInstance
			for _, v := range meld.Tiles() {
				if v == tile.Tile {
					tiles = append(tiles, tile)
					continue
				}
				inst := &TileInstance{ID: -1, Tile: v}
				for _, held := range p.handTiles {
					if held.Tile == v {
						inst = held
					}
				}
				tiles = append(tiles, inst)
			}
			a := NewFormMeldAction(WindNorth, &MeldInstance{Meld: meld, Tiles: tiles}, tile)

			require.ErrorIs(t, h.TryExecuteAction(a), ErrPatternUnsatisfied)
			assert.Empty(t, p.melds)
			assert.False(t, w.IsClosed())
		})
	}
}

func TestOnlySystemClosesWindow(t *testing.T) {
	h := newTestHand(t, windowHands)
	w, _ := discardFromWest(t, h, "3万")

	for _, seat := range OrderedSeatsFrom(WindEast) {
		a := &Action{Kind: ActionCloseWindow, Seat: seat}
		assert.ErrorIs(t, h.TryExecuteAction(a), ErrNotYourTurn, "seat %s", seat)
	}
	assert.False(t, w.IsClosed())
	require.NoError(t, h.TryExecuteAction(NewCloseWindowAction()))
	assert.True(t, w.IsClosed())
}
