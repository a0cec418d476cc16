package stats

import (
	"encoding/json"
	"expvar"
	"net/http"
	"sync"
	"time"
)

// Metric names shared by the packages that report them.
const (
	ActiveSessions    = "ActiveSessions"
	TotalSessions     = "TotalSessions"
	AssistantMessages = "AssistantMessages"
	GenerationCalls   = "GenerationCalls"
	GenerationFailed  = "GenerationFailed"
	FallbackResponses = "FallbackResponses"
	RateLimited       = "RateLimited"
	SignaturesCreated = "SignaturesCreated"
	CampaignsCreated  = "CampaignsCreated"
)

type StatsProvider interface {
	Incr(name string)
	Decr(name string)
	RegisterMetric(name string)
	Run()
}

// StatsUpdater owns an expvar map that is only written by its own
// goroutine. The map is not published globally so several updaters can
// coexist in one process.
type StatsUpdater struct {
	vars       *expvar.Map
	updateChan chan *metricsUpdateReq
	stopOnce   sync.Once
}

type metricsUpdateReq struct {
	name  string
	value int
	done  chan struct{}
}

func (su *StatsUpdater) expvarHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(su.Snapshot())
}

// NewStatsUpdater creates a stats updater and registers its handler on
// GET /debug/vars.
func NewStatsUpdater(mux *http.ServeMux) *StatsUpdater {
	su := &StatsUpdater{
		vars:       new(expvar.Map).Init(),
		updateChan: make(chan *metricsUpdateReq, 512),
	}
	mux.Handle("GET /debug/vars", http.HandlerFunc(su.expvarHandler))
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))
}

func (su *StatsUpdater) updateMetrics() {
	for req := range su.updateChan {
		if req.done != nil {
			close(req.done)
			continue
		}

		// Add creates the counter when it was never registered.
		su.vars.Add(req.name, int64(req.value))
	}
}

// Snapshot decodes the current values into a plain map.
func (su *StatsUpdater) Snapshot() map[string]any {
	out := make(map[string]any)
	su.vars.Do(func(kv expvar.KeyValue) {
		var value any
		json.Unmarshal([]byte(kv.Value.String()), &value)
		out[kv.Key] = value
	})
	return out
}

// Flush blocks until every update queued before it was applied.
func (su *StatsUpdater) Flush() {
	done := make(chan struct{})
	su.updateChan <- &metricsUpdateReq{done: done}
	<-done
}

func (su *StatsUpdater) Incr(name string) {
	su.updateChan <- &metricsUpdateReq{name: name, value: 1}
}

func (su *StatsUpdater) Decr(name string) {
	su.updateChan <- &metricsUpdateReq{name: name, value: -1}
}

func (su *StatsUpdater) RegisterMetric(name string) {
	su.vars.Set(name, new(expvar.Int))
}

func (su *StatsUpdater) Run() {
	go su.updateMetrics()
}

func (su *StatsUpdater) Stop() {
	su.stopOnce.Do(func() { close(su.updateChan) })
}

// Nop discards every update.
type Nop struct{}

func (Nop) Incr(string)           {}
func (Nop) Decr(string)           {}
func (Nop) RegisterMetric(string) {}
func (Nop) Run()                  {}
