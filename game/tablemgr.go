package game

import (
	"context"
	"sync"
	"time"

	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// TableManager 管理牌桌并驱动各桌定时器
type TableManager struct {
	mu       sync.RWMutex
	tables   map[string]*Table // tableID -> Table
	interval time.Duration
}

// NewTableManager 创建牌桌管理器
func NewTableManager(interval time.Duration) *TableManager {
	if interval <= 0 {
		interval = time.Second
	}
	return &TableManager{
		tables:   make(map[string]*Table),
		interval: interval,
	}
}

// Run 按间隔驱动所有牌桌的定时器，直到ctx结束
func (t *TableManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Log.Infof("table manager stopped: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			t.tick()
		}
	}
}

func (t *TableManager) tick() {
	t.mu.RLock()
	tables := make([]*Table, 0, len(t.tables))
	for _, table := range t.tables {
		tables = append(tables, table)
	}
	t.mu.RUnlock()
	for _, table := range tables {
		table.tick()
	}
}

// Create 创建并登记一张新桌
func (t *TableManager) Create(cfg *Config, opts ...TableOption) (*Table, error) {
	table, err := NewTable(cfg, opts...)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tables[table.ID()] = table
	return table, nil
}

// Get 获取指定桌号的牌桌
func (t *TableManager) Get(tableID string) *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tables[tableID]
}

// Delete 删除指定桌号的牌桌
func (t *TableManager) Delete(tableID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tables, tableID)
}

func (t *TableManager) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tables)
}
