package controller

import (
	"sort"
	"sync"
	"time"
)

// Источники команды пресета
const (
	SourceClick = "click"
	SourceKey   = "key"
	SourceCLI   = "cli"
)

// CommandRecord результат одной команды пресета
type CommandRecord struct {
	ZoneID    int    `json:"zone_id"`
	Source    string `json:"source"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
	LatencyMs int64  `json:"latency_ms"`
}

// ZoneStats статистика команд по зоне
type ZoneStats struct {
	ZoneID   int   `json:"zone_id"`
	Sent     int64 `json:"sent"`
	Failed   int64 `json:"failed"`
	LastSent int64 `json:"last_sent"`
}

// CommandRepository - журнал команд пресетов (in-memory, ограниченный)
type CommandRepository struct {
	records []CommandRecord
	stats   map[int]*ZoneStats
	limit   int
	mu      sync.RWMutex
}

// NewCommandRepository создает журнал на limit последних записей
func NewCommandRepository(limit int) *CommandRepository {
	if limit <= 0 {
		limit = 100
	}
	return &CommandRepository{
		records: make([]CommandRecord, 0, limit),
		stats:   make(map[int]*ZoneStats),
		limit:   limit,
	}
}

// Save сохраняет результат команды
func (r *CommandRepository) Save(zoneID int, source string, latency time.Duration, err error) CommandRecord {
	rec := CommandRecord{
		ZoneID:    zoneID,
		Source:    source,
		Success:   err == nil,
		Timestamp: time.Now().Unix(),
		LatencyMs: latency.Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) == r.limit {
		copy(r.records, r.records[1:])
		r.records = r.records[:r.limit-1]
	}
	r.records = append(r.records, rec)

	stats, exists := r.stats[zoneID]
	if !exists {
		stats = &ZoneStats{ZoneID: zoneID}
		r.stats[zoneID] = stats
	}
	stats.Sent++
	if err != nil {
		stats.Failed++
	}
	stats.LastSent = rec.Timestamp

	return rec
}

// Recent возвращает последние n записей, новые в конце
func (r *CommandRepository) Recent(n int) []CommandRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > len(r.records) {
		n = len(r.records)
	}
	out := make([]CommandRecord, n)
	copy(out, r.records[len(r.records)-n:])
	return out
}

// GetAllStats возвращает статистику по зонам, отсортированную по ID
func (r *CommandRepository) GetAllStats() []ZoneStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]ZoneStats, 0, len(r.stats))
	for _, s := range r.stats {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ZoneID < all[j].ZoneID })
	return all
}
