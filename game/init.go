package game

var tableManager *TableManager

// InitGame 初始化游戏模块
func InitGame(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tableManager = NewTableManager(cfg.Table.TickInterval)
}

// GetTableManager 获取牌桌管理器实例
func GetTableManager() *TableManager {
	return tableManager
}
