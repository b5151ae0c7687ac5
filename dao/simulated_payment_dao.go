// api/dao/simulated_payment_dao.go
package dao

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	score_errors "github.com/farrowscore/api/errors"
	"github.com/farrowscore/api/model"
)

type simulatedCharge struct {
	charge   model.Charge
	created  time.Time
	resolved string
}

// SimulatedPaymentDAO is an in-process provider for environments without a
// Coinbase account. A charge settles once settleAfter has elapsed.
type SimulatedPaymentDAO struct {
	mu          sync.Mutex
	charges     map[string]*simulatedCharge
	settleAfter time.Duration
	now         func() time.Time
}

func NewSimulatedPaymentDAO(settleAfter time.Duration) *SimulatedPaymentDAO {
	return &SimulatedPaymentDAO{
		charges:     make(map[string]*simulatedCharge),
		settleAfter: settleAfter,
		now:         time.Now,
	}
}

func (d *SimulatedPaymentDAO) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

func (d *SimulatedPaymentDAO) CreateCharge(_ context.Context, req model.ChargeRequest) (*model.Charge, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ref := "sim_" + uuid.New().String()
	created := d.now()
	sc := &simulatedCharge{
		charge: model.Charge{
			ID:        ref,
			Code:      ref,
			HostedURL: "https://pay.simulated.local/charges/" + ref,
			Timeline:  []model.ChargeEvent{{Status: ChargeStatusNew, Time: created}},
		},
		created: created,
	}
	d.charges[ref] = sc
	c := sc.charge
	return &c, nil
}

func (d *SimulatedPaymentDAO) GetCharge(_ context.Context, chargeRef string) (*model.Charge, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sc, ok := d.charges[chargeRef]
	if !ok {
		return nil, fmt.Errorf("%w: unknown simulated charge %s", score_errors.ErrPaymentProvider, chargeRef)
	}

	charge := sc.charge
	charge.Timeline = append([]model.ChargeEvent{}, sc.charge.Timeline...)
	now := d.now()
	switch {
	case sc.resolved != "":
		charge.Timeline = append(charge.Timeline, model.ChargeEvent{Status: sc.resolved, Time: now})
	case now.Sub(sc.created) >= d.settleAfter:
		charge.Timeline = append(charge.Timeline, model.ChargeEvent{Status: ChargeStatusCompleted, Time: sc.created.Add(d.settleAfter)})
	}
	return &charge, nil
}

// Resolve forces the final timeline status of a charge.
func (d *SimulatedPaymentDAO) Resolve(chargeRef, status string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sc, ok := d.charges[chargeRef]
	if !ok {
		return fmt.Errorf("%w: unknown simulated charge %s", score_errors.ErrPaymentProvider, chargeRef)
	}
	sc.resolved = status
	return nil
}
