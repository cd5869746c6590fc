package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevin-chtw/tw_sgmahjong/game"
	"github.com/kevin-chtw/tw_sgmahjong/mahjong"
	"github.com/kevin-chtw/tw_sgmahjong/utils"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// 四个机器人在一张桌上打若干局，用于检查规则和配置
func main() {
	configPath := flag.String("config", "", "yaml config file")
	hands := flag.Int("hands", 4, "number of hands to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	l, err := utils.Setup(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		log.Fatalf("setup log: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game.InitGame(cfg)
	mgr := game.GetTableManager()
	go mgr.Run(ctx)

	rng := rand.New(rand.NewSource(*seed))
	table, err := mgr.Create(cfg,
		game.WithHandLogger(l),
		game.WithHandOptions(mahjong.WithRand(rand.New(rand.NewSource(rng.Int63())))),
	)
	if err != nil {
		log.Fatalf("create table: %v", err)
	}
	defer mgr.Delete(table.ID())

	if err := run(ctx, table, rng, *hands); err != nil {
		log.Fatalf("play: %v", err)
	}
	for _, w := range mahjong.OrderedSeatsFrom(mahjong.WindEast) {
		fmt.Printf("%-5s %d\n", w, table.PlayerAt(w).GetScore())
	}
}

func run(ctx context.Context, table *game.Table, rng *rand.Rand, hands int) error {
	for _, w := range mahjong.OrderedSeatsFrom(mahjong.WindEast) {
		if err := table.AddPlayer(botID(w), w, 0); err != nil {
			return err
		}
	}
	if err := table.Start(); err != nil {
		return err
	}
	logged := 0
	for logged < hands {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat, _, phase, err := table.NextActor()
		if err != nil {
			return err
		}
		a := pick(table.ValidActions(botID(seat)), rng)
		if a == nil {
			return fmt.Errorf("no action for %s in %s", seat, phase)
		}
		// 两次加锁之间窗口可能已超时关闭，重新取下一个行动者
		if err := table.OnPlayerAction(botID(seat), a); err != nil {
			logger.Log.Debugf("%s in %s: %v", a, phase, err)
		}
		if results := table.Results(); len(results) > logged {
			res := results[logged]
			logger.Log.Infof("hand %s winner %s deltas %v", res.HandID, res.Winner, res.Deltas)
			logged++
		}
	}
	return nil
}

// pick 能胡就胡，否则随机
func pick(actions []*mahjong.Action, rng *rand.Rand) *mahjong.Action {
	if len(actions) == 0 {
		return nil
	}
	for _, a := range actions {
		if a.Kind == mahjong.ActionMahjong || a.Kind == mahjong.ActionSelfDrawMahjong {
			return a
		}
	}
	return actions[rng.Intn(len(actions))]
}

func botID(seat mahjong.Wind) string {
	return "bot-" + seat.String()
}
