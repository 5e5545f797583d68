package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

// stayWithConsumptions returns a detached copy of st with its consumptions in recording order.
func (d *data) stayWithConsumptions(st *stay.Stay) *stay.Stay {
	cp := cloneStay(st)

	for _, c := range d.consumptions {
		if c.StayID == st.ID {
			cc := *c
			cp.Consumptions = append(cp.Consumptions, &cc)
		}
	}

	return cp
}

func (s *Store) GetStay(ctx context.Context, id uuid.UUID) (*stay.Stay, error) {
	var out *stay.Stay

	err := s.withLock(ctx, func(d *data) error {
		st, ok := d.stays[id]
		if !ok || st.DeletedAt != nil {
			return apperr.New(apperr.NotFound, "stay %s", id)
		}

		out = d.stayWithConsumptions(st)

		return nil
	})

	return out, err
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*stay.Product, error) {
	var out *stay.Product

	err := s.withLock(ctx, func(d *data) error {
		p, ok := d.products[id]
		if !ok {
			return apperr.New(apperr.NotFound, "product %s", id)
		}

		cp := *p
		out = &cp

		return nil
	})

	return out, err
}

func (s *Store) ListProducts(ctx context.Context) ([]*stay.Product, error) {
	var out []*stay.Product

	err := s.withLock(ctx, func(d *data) error {
		for _, p := range d.products {
			cp := *p
			out = append(out, &cp)
		}

		return nil
	})

	slices.SortFunc(out, func(a, b *stay.Product) int { return strings.Compare(a.Name, b.Name) })

	return out, err
}

func (s *Store) CreateProduct(ctx context.Context, p *stay.Product) error {
	return s.withLock(ctx, func(d *data) error {
		for _, existing := range d.products {
			if existing.Name == p.Name {
				return apperr.New(apperr.AlreadyExists, "product %s", p.Name)
			}
		}

		p.ID = uuid.New()
		p.CreatedAt = s.now()

		cp := *p
		d.products[p.ID] = &cp

		return nil
	})
}

func (t *tx) CreateStay(_ context.Context, st *stay.Stay) error {
	if st.Status == stay.StatusActive {
		for _, other := range t.d.stays {
			if other.RoomID == st.RoomID && t.d.activeStay(other) {
				return apperr.New(apperr.RoomNotAvailable, "room already hosts an active stay")
			}
		}
	}

	st.ID = uuid.New()
	st.CreatedAt = t.store.now()
	st.UpdatedAt = new(st.CreatedAt)
	t.d.stays[st.ID] = cloneStay(st)

	return nil
}

func (t *tx) LockStay(_ context.Context, id uuid.UUID) (*stay.Stay, error) {
	st, ok := t.d.stays[id]
	if !ok || st.DeletedAt != nil {
		return nil, apperr.New(apperr.NotFound, "stay %s", id)
	}

	return t.d.stayWithConsumptions(st), nil
}

func (t *tx) UpdateStay(_ context.Context, st *stay.Stay) error {
	existing, ok := t.d.stays[st.ID]
	if !ok || existing.DeletedAt != nil {
		return apperr.New(apperr.NotFound, "stay %s", st.ID)
	}

	existing.Status = st.Status
	existing.CheckedOutAt = cloneTime(st.CheckedOutAt)
	existing.UpdatedAt = new(t.store.now())

	return nil
}

func (t *tx) DeleteStay(_ context.Context, id uuid.UUID) error {
	st, ok := t.d.stays[id]
	if !ok {
		return apperr.New(apperr.NotFound, "stay %s", id)
	}

	st.DeletedAt = new(t.store.now())

	return nil
}

func (t *tx) HasInvoice(_ context.Context, stayID uuid.UUID) (bool, error) {
	for _, inv := range t.d.invoices {
		if inv.StayID == stayID && inv.DeletedAt == nil {
			return true, nil
		}
	}

	return false, nil
}

func (t *tx) ConsumeStock(_ context.Context, productID uuid.UUID, quantity int) (*stay.Product, error) {
	p, ok := t.d.products[productID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "product %s", productID)
	}

	if !p.Active {
		return nil, apperr.New(apperr.InvalidArgument, "product %s is not for sale", p.Name)
	}

	if p.Stock < quantity {
		return nil, apperr.New(apperr.InsufficientStock, "%s: %d requested, %d in stock", p.Name, quantity, p.Stock)
	}

	p.Stock -= quantity
	cp := *p

	return &cp, nil
}

func (t *tx) CreateConsumption(_ context.Context, c *stay.Consumption) error {
	if _, ok := t.d.stays[c.StayID]; !ok {
		return apperr.New(apperr.NotFound, "stay %s", c.StayID)
	}

	c.ID = uuid.New()
	cp := *c
	t.d.consumptions = append(t.d.consumptions, &cp)

	return nil
}
