package reserve

import (
	"time"

	"frontline-citizen-be/internal/entity"
)

// slotOffset is the placeholder allocation policy: every reservation lands a
// fixed two hours out. There is no conflict detection, no capacity model and
// no persistence of slot consumption across cases.
const slotOffset = 2 * time.Hour

const slotHumanLayout = "02 Jan, 3:04 PM"

// Desk allocates reservation slots at a target facility. Idempotent and
// stateless: booking the same target twice yields the same place and a slot
// that differs only by the wall clock between calls.
type Desk struct {
	now func() time.Time
}

func NewDesk() *Desk {
	return &Desk{now: time.Now}
}

// Book reserves a slot at the target. Always succeeds for a non-nil target.
func (d *Desk) Book(target *entity.Facility, note string) *entity.Booking {
	if target == nil {
		return nil
	}
	slot := d.now().UTC().Add(slotOffset)
	return &entity.Booking{
		Confirmed: true,
		Place:     target.Name,
		SlotAt:    slot,
		SlotHuman: slot.Format(slotHumanLayout),
		Note:      note,
	}
}
