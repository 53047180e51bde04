package searcher

import (
	"sync/atomic"
	"time"
)

// MoveMetrics are the diagnostics of one decision.
type MoveMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Depth     int
	Nodes     int64
	Leaves    int64
	AlphaCuts int64
	BetaCuts  int64
}

type MetricsCollector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	AddAlphaCut()
	AddBetaCut()
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime time.Time
	depth     int
	nodes     atomic.Int64
	leaves    atomic.Int64
	alphaCuts atomic.Int64
	betaCuts  atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.alphaCuts.Store(0)
	m.betaCuts.Store(0)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddAlphaCut() {
	m.alphaCuts.Add(1)
}

func (m *metricsCollector) AddBetaCut() {
	m.betaCuts.Add(1)
}

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Depth:     m.depth,
		Nodes:     m.nodes.Load(),
		Leaves:    m.leaves.Load(),
		AlphaCuts: m.alphaCuts.Load(),
		BetaCuts:  m.betaCuts.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)             {}
func (m *noMetricsCollector) AddNode()              {}
func (m *noMetricsCollector) AddLeaf()              {}
func (m *noMetricsCollector) AddAlphaCut()          {}
func (m *noMetricsCollector) AddBetaCut()           {}
func (m *noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }
