package invoice

import (
	"errors"
	"testing"

	"invoicing/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineInput struct {
	name     string
	quantity int
	price    int64
}

func newDraft(t *testing.T, lines ...lineInput) *Invoice {
	t.Helper()
	inv, err := NewInvoice("John Doe", "john@example.com")
	require.NoError(t, err)
	for _, l := range lines {
		require.NoError(t, inv.AddProductLine(l.name, l.quantity, l.price))
	}
	return inv
}

func newSending(t *testing.T) *Invoice {
	t.Helper()
	inv := newDraft(t, lineInput{"Service", 1, 100})
	require.NoError(t, inv.MarkAsSending())
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := newDraft(t)

	assert.NotEmpty(t, inv.ID())
	assert.Equal(t, "John Doe", inv.CustomerName())
	assert.Equal(t, "john@example.com", inv.CustomerEmail())
	assert.Equal(t, StatusDraft, inv.Status())
	assert.Empty(t, inv.ProductLines())
	assert.Equal(t, int64(0), inv.TotalPrice())
	assert.False(t, inv.CreatedAt().IsZero())

	other := newDraft(t)
	assert.NotEqual(t, inv.ID(), other.ID())
}

func TestAddProductLine_PreservesOrderAndAcceptsInvalidLines(t *testing.T) {
	inv := newDraft(t,
		lineInput{"First", 1, 10},
		lineInput{"Broken", 0, -5},
		lineInput{"Third", 3, 7},
	)

	lines := inv.ProductLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "First", lines[0].Name())
	assert.Equal(t, "Broken", lines[1].Name())
	assert.Equal(t, "Third", lines[2].Name())
	assert.NotEmpty(t, lines[0].ID())
	assert.NotEqual(t, lines[0].ID(), lines[2].ID())
	assert.Equal(t, StatusDraft, inv.Status())
}

func TestProductLines_ReturnsCopy(t *testing.T) {
	inv := newDraft(t, lineInput{"Service", 1, 100})

	lines := inv.ProductLines()
	lines[0] = ProductLine{name: "tampered"}

	assert.Equal(t, "Service", inv.ProductLines()[0].Name())
}

func TestTotalPrice(t *testing.T) {
	// 5*200 + 2*300
	inv := newDraft(t, lineInput{"A", 5, 200}, lineInput{"B", 2, 300})
	assert.Equal(t, int64(1600), inv.TotalPrice())

	lines := inv.ProductLines()
	assert.Equal(t, int64(1000), lines[0].Total())
	assert.Equal(t, int64(600), lines[1].Total())
}

func TestTotalPrice_IsOrderIndependent(t *testing.T) {
	inputs := []lineInput{{"A", 5, 200}, {"B", 2, 300}, {"C", 7, 13}, {"D", 1, 1}}

	forward := newDraft(t, inputs...)
	reversed := make([]lineInput, len(inputs))
	for i, in := range inputs {
		reversed[len(inputs)-1-i] = in
	}
	backward := newDraft(t, reversed...)

	var want int64
	for _, in := range inputs {
		want += int64(in.quantity) * in.price
	}
	assert.Equal(t, want, forward.TotalPrice())
	assert.Equal(t, want, backward.TotalPrice())
}

func TestMarkAsSending_Success(t *testing.T) {
	inv := newDraft(t, lineInput{"A", 1, 100}, lineInput{"B", 2, 50})
	before := inv.ProductLines()

	require.NoError(t, inv.MarkAsSending())

	assert.Equal(t, StatusSending, inv.Status())
	assert.Equal(t, before, inv.ProductLines())
	assert.Equal(t, "John Doe", inv.CustomerName())
}

func TestMarkAsSending_EmptyLines(t *testing.T) {
	inv := newDraft(t)

	err := inv.MarkAsSending()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyProductLines)
	assert.ErrorIs(t, err, ErrInvoiceValidation)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrInvalidInvoiceState)
	assert.Equal(t, StatusDraft, inv.Status())
}

func TestMarkAsSending_InvalidLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []lineInput
	}{
		{"zero quantity", []lineInput{{"A", 0, 100}}},
		{"negative quantity", []lineInput{{"A", -1, 100}}},
		{"zero price", []lineInput{{"A", 1, 0}}},
		{"negative price", []lineInput{{"A", 1, -100}}},
		{"one bad line among good ones", []lineInput{{"A", 1, 100}, {"B", 2, 0}, {"C", 3, 30}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newDraft(t, tt.lines...)

			err := inv.MarkAsSending()

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProductLines)
			assert.ErrorIs(t, err, ErrInvoiceValidation)
			assert.NotErrorIs(t, err, ErrEmptyProductLines)
			assert.Equal(t, StatusDraft, inv.Status())
		})
	}
}

func TestMarkAsSending_FromNonDraftFails(t *testing.T) {
	sending := newSending(t)
	err := sending.MarkAsSending()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInvoiceState)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Contains(t, err.Error(), "current status: sending")
	assert.Equal(t, StatusSending, sending.Status())

	sent := newSending(t)
	sent.MarkAsSentToClient()
	err = sent.MarkAsSending()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInvoiceState)
	assert.Contains(t, err.Error(), "current status: sent-to-client")
	assert.Equal(t, StatusSentToClient, sent.Status())
}

func TestMarkAsSending_StateCheckedBeforeLines(t *testing.T) {
	// A sending invoice rebuilt without lines must still report the state error.
	inv := RebuildFromDTO(ReconstructionDTO{ID: "inv-1", Status: StatusSending})

	err := inv.MarkAsSending()

	assert.ErrorIs(t, err, ErrInvalidInvoiceState)
}

func TestMarkAsSending_UnknownStatus(t *testing.T) {
	inv := RebuildFromDTO(ReconstructionDTO{
		ID:           "inv-1",
		ProductLines: []ProductLine{RebuildProductLineFromDTO(ProductLineReconstructionDTO{ID: "l", Name: "A", Quantity: 1, Price: 1})},
	})

	err := inv.MarkAsSending()

	assert.ErrorIs(t, err, ErrInvalidInvoiceState)
	assert.Contains(t, err.Error(), "current status: status(0)")
	assert.Equal(t, Status(0), inv.Status())
}

func TestMarkAsSentToClient(t *testing.T) {
	t.Run("sending becomes sent to client", func(t *testing.T) {
		inv := newSending(t)
		inv.MarkAsSentToClient()
		assert.Equal(t, StatusSentToClient, inv.Status())
	})

	t.Run("idempotent", func(t *testing.T) {
		once := newSending(t)
		once.MarkAsSentToClient()

		twice := newSending(t)
		twice.MarkAsSentToClient()
		twice.MarkAsSentToClient()

		assert.Equal(t, once.Status(), twice.Status())
	})

	t.Run("draft is unchanged", func(t *testing.T) {
		inv := newDraft(t, lineInput{"A", 1, 1})
		inv.MarkAsSentToClient()
		assert.Equal(t, StatusDraft, inv.Status())
	})
}

func TestRebuildFromDTO(t *testing.T) {
	line := RebuildProductLineFromDTO(ProductLineReconstructionDTO{ID: "line-1", Name: "A", Quantity: 2, Price: 50})
	inv := RebuildFromDTO(ReconstructionDTO{
		ID:            "inv-1",
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Status:        StatusSending,
		ProductLines:  []ProductLine{line},
	})

	assert.Equal(t, "inv-1", inv.ID())
	assert.Equal(t, StatusSending, inv.Status())
	require.Len(t, inv.ProductLines(), 1)
	assert.Equal(t, "line-1", inv.ProductLines()[0].ID())
	assert.Equal(t, int64(100), inv.TotalPrice())
}

func TestStatus(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSending, StatusSentToClient} {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.True(t, s.IsValid())
	}

	assert.Equal(t, "draft", StatusDraft.String())
	assert.Equal(t, "sending", StatusSending.String())
	assert.Equal(t, "sent-to-client", StatusSentToClient.String())

	_, err := ParseStatus("paid")
	assert.Error(t, err)
	assert.False(t, Status(0).IsValid())
}

func TestInvoiceErrors_CarryStack(t *testing.T) {
	err := NewInvoiceNotFoundError("inv-404")

	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "inv-404")

	var stacker shared.Stacker
	require.True(t, errors.As(err, &stacker))
	assert.NotEmpty(t, stacker.Stack())
}
