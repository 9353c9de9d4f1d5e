package conversation

import "github.com/ShumBox/shumdev/internal/order"

// Reply is an abstract outgoing message. The transport adapter decides how to
// render the keyboard hints.
type Reply struct {
	Text string
	// Choices, when set, asks the transport to offer a one-time reply
	// keyboard with these rows. Free text remains acceptable.
	Choices [][]string
	// RemoveKeyboard asks the transport to hide a previously shown keyboard.
	RemoveKeyboard bool
}

// Transition is the outcome of feeding one input into the state machine.
type Transition struct {
	Next     Step
	Draft    order.Draft
	Replies  []Reply
	Finalize bool
}

// StartReply greets the user and offers the shop type choices.
func StartReply() Reply {
	return Reply{Text: textWelcome, Choices: shopTypeChoices}
}

// Advance is the pure transition function of the dialog: given the current
// step, the draft so far, and the raw user input, it returns the next step,
// the updated draft, and the prompts to emit. It touches no shared state.
//
// Every field is stored verbatim. Only the phone step validates its input;
// on failure the step does not advance and the draft is left unchanged.
func Advance(step Step, d order.Draft, input string) Transition {
	switch step {
	case StepShopType:
		d.ShopType = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskShopName, RemoveKeyboard: true}}}
	case StepShopName:
		d.ShopName = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskShopAddress}}}
	case StepShopAddress:
		d.ShopAddress = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskItems}}}
	case StepItems:
		d.Items = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskDeliveryTime}}}
	case StepDeliveryTime:
		d.DeliveryTime = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskPhone}}}
	case StepPhone:
		if !order.ValidatePhone(input) {
			return Transition{Next: step, Draft: d, Replies: []Reply{{Text: textPhoneRetry}}}
		}
		d.Phone = input
		return Transition{Next: step.next(), Draft: d, Replies: []Reply{{Text: textAskDeliveryAddress}}}
	case StepDeliveryAddress:
		d.DeliveryAddress = input
		return Transition{Next: StepDone, Draft: d, Finalize: true}
	}
	return Transition{Next: step, Draft: d}
}
