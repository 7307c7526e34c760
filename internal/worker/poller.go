package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	rpcbinance "github.com/fystack/bnbchain-adapter/internal/rpc/binance"
	"github.com/fystack/bnbchain-adapter/pkg/binance"
	"github.com/fystack/bnbchain-adapter/pkg/common/config"
	"github.com/fystack/bnbchain-adapter/pkg/common/logger"
	"github.com/fystack/bnbchain-adapter/pkg/common/types"
	"github.com/fystack/bnbchain-adapter/pkg/events"
	"github.com/fystack/bnbchain-adapter/pkg/store/txstore"
)

// Worker is the interface implemented by the adapter's background workers.
type Worker interface {
	Start()
	Stop()
}

type PollerDeps struct {
	Client  rpcbinance.BinanceAPI
	Store   txstore.Store
	Emitter events.Emitter
}

// Poller reads each watched address from the REST API on an interval, normalizes
// the records and emits every tx once.
type Poller struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	wg     sync.WaitGroup

	deps      PollerDeps
	addresses []string
	interval  time.Duration
	lookback  time.Duration
	limit     int
	now       func() time.Time

	triggers map[string]chan struct{}
}

func NewPoller(ctx context.Context, cfg config.BinanceConfig, deps PollerDeps) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	addresses := NormalizeAddresses(cfg.Addresses)
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = config.DefaultPollInterval
	}

	triggers := make(map[string]chan struct{}, len(addresses))
	for _, addr := range addresses {
		triggers[addr] = make(chan struct{}, 1)
	}

	return &Poller{
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With(slog.String("worker", "poller"), slog.String("network", string(cfg.Network))),
		deps:      deps,
		addresses: addresses,
		interval:  cfg.PollInterval,
		lookback:  cfg.Lookback,
		limit:     cfg.Limit,
		now:       time.Now,
		triggers:  triggers,
	}
}

// NormalizeAddresses trims, drops empties and removes duplicates, keeping order.
func NormalizeAddresses(addresses []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(addresses, func(a string, _ int) string {
		return strings.TrimSpace(a)
	})))
}

func (p *Poller) Addresses() []string {
	return p.addresses
}

func (p *Poller) Start() {
	p.logger.Info("Starting poller",
		"addresses", len(p.addresses),
		"interval", p.interval,
	)
	for _, addr := range p.addresses {
		p.wg.Add(1)
		go func(addr string) {
			defer p.wg.Done()
			p.run(addr)
		}(addr)
	}
}

// Stop cancels every address loop and waits for them to return.
func (p *Poller) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info("Poller stopped")
}

// Trigger asks for an immediate poll of address. Unknown addresses are ignored.
func (p *Poller) Trigger(address string) bool {
	ch, ok := p.triggers[address]
	if !ok {
		return false
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return true
}

func (p *Poller) run(address string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log := p.logger.With("address", address)
	for {
		emitted, err := p.PollAddress(p.ctx, address)
		if err != nil {
			if p.ctx.Err() != nil {
				return
			}
			log.Error("Poll failed", "err", err)
			if p.deps.Emitter != nil {
				_ = p.deps.Emitter.EmitError(fmt.Errorf("poll %s: %w", address, err))
			}
		} else if emitted > 0 {
			log.Info("Emitted transactions", "count", emitted)
		}

		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
		case <-p.triggers[address]:
			log.Debug("Poll triggered by stream")
		}
	}
}

// PollAddress reads all records since the address cursor, emits the unseen ones and
// advances the cursor to the newest record it saw. It returns the emitted count.
func (p *Poller) PollAddress(ctx context.Context, address string) (int, error) {
	start, err := p.deps.Store.GetCursor(address)
	if err != nil {
		return 0, fmt.Errorf("get cursor: %w", err)
	}
	end := p.now()
	if start.IsZero() || (p.lookback > 0 && end.Sub(start) > p.lookback) {
		start = end.Add(-p.lookback)
	}

	var (
		emitted int
		newest  = start
		errs    types.MultiError
		offset  int
	)
	for {
		page, err := p.deps.Client.GetTransactions(ctx, address, rpcbinance.TxQuery{
			StartTime: start,
			EndTime:   end,
			Limit:     p.limit,
			Offset:    offset,
		})
		if err != nil {
			return emitted, fmt.Errorf("get transactions: %w", err)
		}

		for _, record := range page.Tx {
			if record.Code != 0 {
				continue
			}
			if record.TimeStamp.After(newest) {
				newest = record.TimeStamp.Time
			}
			tx, ok := binance.NormalizeTx(record)
			if !ok {
				p.logger.Debug("Skipping record with unknown asset", "hash", record.TxHash, "asset", record.TxAsset)
				continue
			}
			ok, err := p.emitOnce(tx)
			if err != nil {
				errs.Add(fmt.Errorf("tx %s: %w", tx.Hash, err))
				continue
			}
			if ok {
				emitted++
			}
		}

		offset += len(page.Tx)
		if len(page.Tx) == 0 || offset >= page.Total {
			break
		}
	}

	if !errs.IsEmpty() {
		// keep the cursor so failed txs are retried on the next poll
		return emitted, &errs
	}
	if newest.After(start) {
		if err := p.deps.Store.SaveCursor(address, newest); err != nil {
			return emitted, fmt.Errorf("save cursor: %w", err)
		}
	}
	return emitted, nil
}

func (p *Poller) emitOnce(tx *types.Tx) (bool, error) {
	key := tx.IdempotencyKey()
	seen, err := p.deps.Store.Seen(key)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}
	if err := p.deps.Emitter.EmitTransaction(tx); err != nil {
		return false, err
	}
	return true, p.deps.Store.MarkSeen(key)
}
