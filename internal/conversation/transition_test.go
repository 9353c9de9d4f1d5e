package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShumBox/shumdev/internal/order"
)

func TestAdvanceWalksAllStepsInOrder(t *testing.T) {
	inputs := map[Step]string{
		StepShopType:        "Продуктовый магазин",
		StepShopName:        "Пятёрочка",
		StepShopAddress:     "ул. Ленина, 10",
		StepItems:           "хлеб, молоко",
		StepDeliveryTime:    "14:00",
		StepPhone:           "+79991234567",
		StepDeliveryAddress: "ул. Мира, 5",
	}

	step := StepShopType
	var draft order.Draft
	for i := 0; i < len(steps); i++ {
		tr := Advance(step, draft, inputs[step])
		if step == StepDeliveryAddress {
			assert.True(t, tr.Finalize)
			assert.Equal(t, StepDone, tr.Next)
		} else {
			assert.False(t, tr.Finalize)
			require.NotEmpty(t, tr.Replies, "step %s must prompt", step)
			assert.Equal(t, steps[i+1], tr.Next)
		}
		step = tr.Next
		draft = tr.Draft
	}

	assert.Equal(t, StepDone, step)
	assert.Equal(t, inputs[StepShopType], draft.ShopType)
	assert.Equal(t, inputs[StepShopName], draft.ShopName)
	assert.Equal(t, inputs[StepShopAddress], draft.ShopAddress)
	assert.Equal(t, inputs[StepItems], draft.Items)
	assert.Equal(t, inputs[StepDeliveryTime], draft.DeliveryTime)
	assert.Equal(t, inputs[StepPhone], draft.Phone)
	assert.Equal(t, inputs[StepDeliveryAddress], draft.DeliveryAddress)
}

func TestAdvanceStoresFreeTextVerbatim(t *testing.T) {
	// The shop type step accepts anything, not only the offered categories.
	tr := Advance(StepShopType, order.Draft{}, "  ларёк у дома / №3  ")
	assert.Equal(t, "  ларёк у дома / №3  ", tr.Draft.ShopType)
	assert.Equal(t, StepShopName, tr.Next)

	// The delivery time step performs no format validation.
	tr = Advance(StepDeliveryTime, order.Draft{}, "послезавтра вечером")
	assert.Equal(t, "послезавтра вечером", tr.Draft.DeliveryTime)
	assert.Equal(t, StepPhone, tr.Next)
}

func TestAdvanceInvalidPhoneDoesNotAdvance(t *testing.T) {
	draft := order.Draft{ShopType: "Аптека"}

	tr := Advance(StepPhone, draft, "+7-999-123-45-67")
	assert.Equal(t, StepPhone, tr.Next)
	assert.Equal(t, draft, tr.Draft, "draft must be unchanged")
	assert.Empty(t, tr.Draft.Phone)
	require.Len(t, tr.Replies, 1)
	assert.Equal(t, textPhoneRetry, tr.Replies[0].Text)
	assert.False(t, tr.Finalize)
}

func TestAdvanceValidPhoneAfterRetries(t *testing.T) {
	var draft order.Draft
	for _, bad := range []string{"9991234567", "+7999123456", "abc"} {
		tr := Advance(StepPhone, draft, bad)
		assert.Equal(t, StepPhone, tr.Next)
		draft = tr.Draft
	}

	tr := Advance(StepPhone, draft, "89991234567")
	assert.Equal(t, StepDeliveryAddress, tr.Next)
	assert.Equal(t, "89991234567", tr.Draft.Phone)
}

func TestAdvanceFinalStepEmitsNoPromptItself(t *testing.T) {
	tr := Advance(StepDeliveryAddress, order.Draft{}, "ул. Мира, 5")
	assert.True(t, tr.Finalize)
	assert.Empty(t, tr.Replies, "confirmation is composed after persistence")
}

func TestAdvanceDoneIsInert(t *testing.T) {
	draft := order.Draft{ShopType: "Аптека"}
	tr := Advance(StepDone, draft, "anything")
	assert.Equal(t, StepDone, tr.Next)
	assert.Equal(t, draft, tr.Draft)
	assert.Empty(t, tr.Replies)
	assert.False(t, tr.Finalize)
}

func TestStartReplyOffersShopTypeChoices(t *testing.T) {
	reply := StartReply()
	assert.Equal(t, textWelcome, reply.Text)
	assert.Equal(t, shopTypeChoices, reply.Choices)
}

func TestFirstAdvanceRemovesKeyboard(t *testing.T) {
	tr := Advance(StepShopType, order.Draft{}, "Аптека")
	require.Len(t, tr.Replies, 1)
	assert.True(t, tr.Replies[0].RemoveKeyboard)
}
