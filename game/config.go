package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/kevin-chtw/tw_sgmahjong/mahjong"
	"github.com/spf13/viper"
)

const envPrefix = "SGMJ"

type Config struct {
	Rule  mahjong.Rule `mapstructure:"rule"`
	Table TableConfig  `mapstructure:"table"`
	Log   LogConfig    `mapstructure:"log"`
}

type TableConfig struct {
	WindowTimeout  time.Duration `mapstructure:"window_timeout"` // 抢牌窗口超时后关闭
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	ScoreBase      int64         `mapstructure:"score_base"`
	ScoreType      int           `mapstructure:"score_type"`
	PrevailingWind string        `mapstructure:"prevailing_wind"`
	Manual         string        `mapstructure:"manual"` // 预设牌墙文件，空则不启用
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// LoadConfig 读取yaml配置，环境变量SGMJ_前缀覆盖，如 SGMJ_RULE_MAX_DOUBLES
func LoadConfig(path string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig 不读文件时的配置
func DefaultConfig() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(vp *viper.Viper) {
	rule := mahjong.DefaultRule()
	vp.SetDefault("rule.max_doubles", rule.MaxDoubles)
	vp.SetDefault("rule.mixed_suits", rule.MixedSuits)
	vp.SetDefault("rule.pure_suits", rule.PureSuits)
	vp.SetDefault("rule.triplets_hand", rule.TripletsHand)
	vp.SetDefault("rule.sequence_hand", rule.SequenceHand)
	vp.SetDefault("rule.mixed_terminals", rule.MixedTerminals)
	vp.SetDefault("rule.dead_wall_tiles", rule.DeadWallTiles)

	vp.SetDefault("table.window_timeout", 8*time.Second)
	vp.SetDefault("table.tick_interval", 250*time.Millisecond)
	vp.SetDefault("table.score_base", 1)
	vp.SetDefault("table.score_type", int(mahjong.ScoreTypeNatural))
	vp.SetDefault("table.prevailing_wind", mahjong.WindEast.String())
	vp.SetDefault("table.manual", "")

	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.dir", "./logs")
}

func (c *Config) Validate() error {
	if err := c.Rule.Validate(); err != nil {
		return err
	}
	if c.Table.WindowTimeout <= 0 {
		return fmt.Errorf("table.window_timeout must be positive, got %s", c.Table.WindowTimeout)
	}
	if c.Table.TickInterval <= 0 {
		return fmt.Errorf("table.tick_interval must be positive, got %s", c.Table.TickInterval)
	}
	if c.Table.ScoreBase <= 0 {
		return fmt.Errorf("table.score_base must be positive, got %d", c.Table.ScoreBase)
	}
	if c.Table.ScoreType < int(mahjong.ScoreTypeNatural) || c.Table.ScoreType > int(mahjong.ScoreTypeJustWin) {
		return fmt.Errorf("table.score_type out of range: %d", c.Table.ScoreType)
	}
	if _, err := c.prevailingWind(); err != nil {
		return err
	}
	return nil
}

func (c *Config) prevailingWind() (mahjong.Wind, error) {
	w := mahjong.ParseWind(c.Table.PrevailingWind)
	if !w.IsValid() {
		return mahjong.SeatNull, fmt.Errorf("table.prevailing_wind unknown: %q", c.Table.PrevailingWind)
	}
	return w, nil
}
