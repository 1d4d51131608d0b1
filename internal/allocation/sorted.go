package allocation

import (
	"math"
	"sort"

	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"github.com/sinking-fund/backend/internal/models"
	"github.com/sinking-fund/backend/internal/types"
)

// SortKey extracts a sortable key from a bill instance. Envelopes with
// lower keys are funded first; equal keys keep their input order.
type SortKey interface {
	Key(instance models.BillInstance, currDate types.Date) float64
}

// Cascade orders envelopes by ascending due date, so the most urgent
// obligations are funded first.
type Cascade struct{}

func (Cascade) Key(instance models.BillInstance, currDate types.Date) float64 {
	return float64(currDate.DaysUntil(instance.DueDate))
}

// DebtSnowball orders envelopes by ascending amount due, so small bills
// are paid off completely first.
type DebtSnowball struct{}

func (DebtSnowball) Key(instance models.BillInstance, _ types.Date) float64 {
	return instance.AmountDue.InexactFloat64()
}

// PriorityRule maps a glob pattern on the service name to a priority
// rank. Lower ranks are funded first.
type PriorityRule struct {
	Pattern  string `json:"pattern" example:"*insurance*"`
	Priority int    `json:"priority" example:"1"`
}

// PriorityRules orders envelopes by the rank of the first rule whose
// pattern matches the service name. Services no rule matches sort last.
type PriorityRules struct {
	Rules []PriorityRule
}

func (p PriorityRules) Key(instance models.BillInstance, _ types.Date) float64 {
	for _, rule := range p.Rules {
		if glob.Glob(rule.Pattern, instance.Service) {
			return float64(rule.Priority)
		}
	}

	return math.MaxInt32
}

// SortedAllocator funds envelopes one by one in the order produced by
// its sort key, giving each envelope its full amount due until the
// balance runs out. The first envelope the balance cannot cover
// receives the remainder, all later envelopes receive zero.
type SortedAllocator struct {
	SortKey SortKey
	Reverse bool
}

// NewSortedAllocator returns a waterfall allocator with the given key.
func NewSortedAllocator(key SortKey, reverse bool) SortedAllocator {
	return SortedAllocator{SortKey: key, Reverse: reverse}
}

func (a SortedAllocator) Allocate(envelopes []*models.Envelope, balance decimal.Decimal, currDate types.Date) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}

	if len(envelopes) == 0 {
		return nil
	}

	// Sort indices instead of the envelopes so that the allocation can
	// be written back in input order.
	order := make([]int, len(envelopes))
	keys := make([]float64, len(envelopes))
	for i, envelope := range envelopes {
		order[i] = i
		keys[i] = a.SortKey.Key(envelope.Instance, currDate)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if a.Reverse {
			return keys[order[i]] > keys[order[j]]
		}

		return keys[order[i]] < keys[order[j]]
	})

	amounts := make([]decimal.Decimal, len(envelopes))
	remainder := balance
	for _, i := range order {
		amount := decimal.Min(remainder, envelopes[i].Instance.AmountDue)
		amounts[i] = amount
		remainder = remainder.Sub(amount)
	}

	return apply(envelopes, amounts)
}
