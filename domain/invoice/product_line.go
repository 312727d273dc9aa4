package invoice

// ProductLine is an entity inside the Invoice aggregate.
// It has no life of its own: lines are created through Invoice.AddProductLine
// and are never shared between invoices.
type ProductLine struct {
	id       string
	name     string
	quantity int
	price    int64
}

// IsValid reports whether the line satisfies the send preconditions.
// Lines failing this check may still exist on a draft.
func (l ProductLine) IsValid() bool {
	return l.quantity > 0 && l.price > 0
}

// Total is quantity multiplied by unit price.
func (l ProductLine) Total() int64 {
	return int64(l.quantity) * l.price
}

func (l ProductLine) ID() string    { return l.id }
func (l ProductLine) Name() string  { return l.name }
func (l ProductLine) Quantity() int { return l.quantity }
func (l ProductLine) Price() int64  { return l.price }

// ProductLineReconstructionDTO is the repository-only input for RebuildProductLineFromDTO.
type ProductLineReconstructionDTO struct {
	ID       string
	Name     string
	Quantity int
	Price    int64
}

// RebuildProductLineFromDTO restores a persisted line. Repository use only.
func RebuildProductLineFromDTO(dto ProductLineReconstructionDTO) ProductLine {
	return ProductLine{
		id:       dto.ID,
		name:     dto.Name,
		quantity: dto.Quantity,
		price:    dto.Price,
	}
}
