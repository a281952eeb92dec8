package resident

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acolher/acolher/internal/domain/prescription"
)

// StatusPolicy decides the semaphore value after a dose confirmation. The
// default policy clears to green; facilities that want stickier semaphores
// swap in their own.
type StatusPolicy interface {
	AfterDose(current Status) Status
}

// ConfirmationClears is the default policy: any confirmed dose puts the
// resident back on green.
type ConfirmationClears struct{}

func (ConfirmationClears) AfterDose(Status) Status { return StatusGreen }

// StatusAggregator keeps the resident semaphore in step with medication
// events. It implements prescription.AdministrationListener.
type StatusAggregator struct {
	residents Repository
	policy    StatusPolicy
	log       zerolog.Logger
}

func NewStatusAggregator(residents Repository, policy StatusPolicy, log zerolog.Logger) *StatusAggregator {
	return &StatusAggregator{residents: residents, policy: policy, log: log}
}

func (a *StatusAggregator) AdministrationConfirmed(ctx context.Context, ev prescription.AdministrationEvent) error {
	res, err := a.residents.GetByID(ctx, ev.ResidentID)
	if err != nil {
		return fmt.Errorf("load resident %s: %w", ev.ResidentID, err)
	}

	next := a.policy.AfterDose(res.Status)
	if err := a.residents.UpdateStatus(ctx, res.ID, next); err != nil {
		return fmt.Errorf("update resident status: %w", err)
	}

	a.log.Info().
		Str("resident_id", res.ID.String()).
		Str("prescription_id", ev.PrescriptionID.String()).
		Str("status", string(next)).
		Msg("resident status updated after dose confirmation")
	return nil
}
