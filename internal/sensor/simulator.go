// Package sensor 模拟校园车位传感器的事件流。
// 纯展示用途：产生的日志与预约的正确性无关，
// 可选的扰动模式也只通过 SetSlotStatus 改写车位状态，不触碰预约。
package sensor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/models"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/internal/store"
	"github.com/ahmedbou2000/UniPark-Smart-Parking-Demo/pkg/ws"
)

// 模拟器状态
const (
	StateStopped = "stopped"
	StateRunning = "running"
)

// 事件
const (
	EventStart = "start"
	EventStop  = "stop"
)

// LogCapacity 日志只保留最近 20 条
const LogCapacity = 20

// 固定的传感器事件消息目录
var catalog = []string{
	"📡 Capteur P1-A5: Véhicule détecté",
	"📡 Capteur P2-B3: Place libérée",
	"📡 Capteur P3-C8: Véhicule détecté",
	"⚡ Borne P1-E2: Recharge en cours",
	"✅ Réservation confirmée: P2-D4",
}

// Simulator 传感器事件模拟器
type Simulator struct {
	logger   *zap.Logger
	store    *store.Store
	wsHub    *ws.Hub // 可为 nil（测试场景）
	interval time.Duration
	perturb  bool // 是否随机扰动车位状态

	mu     sync.RWMutex
	fsm    *fsm.FSM
	rng    *rand.Rand
	log    []models.SensorEvent // 最新的在前
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New 创建模拟器
func New(logger *zap.Logger, st *store.Store, wsHub *ws.Hub, interval time.Duration, perturb bool, rng *rand.Rand) *Simulator {
	s := &Simulator{
		logger:   logger,
		store:    st,
		wsHub:    wsHub,
		interval: interval,
		perturb:  perturb,
		rng:      rng,
	}

	s.fsm = fsm.NewFSM(
		StateStopped,
		fsm.Events{
			{Name: EventStart, Src: []string{StateStopped}, Dst: StateRunning},
			{Name: EventStop, Src: []string{StateRunning}, Dst: StateStopped},
		},
		fsm.Callbacks{},
	)
	return s
}

// Start 启动事件流。已在运行时为 no-op。
func (s *Simulator) Start() {
	s.mu.Lock()
	if !s.fsm.Can(EventStart) {
		s.mu.Unlock()
		return
	}
	_ = s.fsm.Event(context.Background(), EventStart)
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.logger.Info("Sensor simulator started", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.run(stopCh)
}

// Stop 停止事件流。已停止时为 no-op。
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.fsm.Can(EventStop) {
		s.mu.Unlock()
		return
	}
	_ = s.fsm.Event(context.Background(), EventStop)
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Sensor simulator stopped")
}

// State 当前状态（stopped/running）
func (s *Simulator) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fsm.Current()
}

// Running 是否正在运行
func (s *Simulator) Running() bool {
	return s.State() == StateRunning
}

// Log 获取日志快照，最新的在前
func (s *Simulator) Log() []models.SensorEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SensorEvent, len(s.log))
	copy(out, s.log)
	return out
}

// run 周期产生事件，直到 stopCh 关闭
func (s *Simulator) run(stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick 产生一条随机事件。独立成方法便于测试按需触发。
func (s *Simulator) Tick() {
	s.mu.Lock()
	msg := catalog[s.rng.Intn(len(catalog))]
	event := s.pushLocked(msg)
	s.mu.Unlock()

	s.logger.Debug("Sensor event", zap.String("message", msg))

	if s.wsHub != nil {
		s.wsHub.BroadcastSensorEvent(event)
	}

	if s.perturb {
		s.perturbSlot()
	}
}

// pushLocked 把消息压入日志头部，调用方需持有锁
func (s *Simulator) pushLocked(msg string) models.SensorEvent {
	event := models.SensorEvent{Message: msg, Timestamp: time.Now()}
	s.log = append([]models.SensorEvent{event}, s.log...)
	if len(s.log) > LogCapacity {
		s.log = s.log[:LogCapacity]
	}
	return event
}

// perturbSlot 随机翻转一个车位的 available/occupied 状态。
// 只走存储的覆写通道，预约状态不受影响。
func (s *Simulator) perturbSlot() {
	slots := s.store.AllSlots()
	if len(slots) == 0 {
		return
	}

	s.mu.Lock()
	slot := slots[s.rng.Intn(len(slots))]
	s.mu.Unlock()

	next := models.SlotOccupied
	if slot.Status == models.SlotOccupied {
		next = models.SlotAvailable
	} else if slot.Status == models.SlotReserved {
		// 被预约的车位不扰动
		return
	}

	updated, err := s.store.SetSlotStatus(slot.ID, next)
	if err != nil {
		return
	}
	if s.wsHub != nil {
		s.wsHub.BroadcastSlotUpdate(updated)
	}
}
