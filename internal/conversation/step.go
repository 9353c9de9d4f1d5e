// Package conversation implements the per-user order dialog: a fixed sequence
// of steps driven by a pure transition function, an in-memory session store
// with a lifetime bound, and the engine that ties them to order persistence
// and operator notification.
package conversation

// Step identifies the field the dialog is currently waiting for.
type Step string

const (
	StepShopType        Step = "awaiting_shop_type"
	StepShopName        Step = "awaiting_shop_name"
	StepShopAddress     Step = "awaiting_shop_address"
	StepItems           Step = "awaiting_items"
	StepDeliveryTime    Step = "awaiting_delivery_time"
	StepPhone           Step = "awaiting_phone"
	StepDeliveryAddress Step = "awaiting_delivery_address"

	// StepDone marks a finished dialog. The session is destroyed the moment
	// this step is reached, so it never rests in the session store.
	StepDone Step = "done"
)

// steps lists the awaiting states in dialog order.
var steps = []Step{
	StepShopType,
	StepShopName,
	StepShopAddress,
	StepItems,
	StepDeliveryTime,
	StepPhone,
	StepDeliveryAddress,
}

func (s Step) next() Step {
	for i, st := range steps {
		if st == s {
			if i == len(steps)-1 {
				return StepDone
			}
			return steps[i+1]
		}
	}
	return StepDone
}
