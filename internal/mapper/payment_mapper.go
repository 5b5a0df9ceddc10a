package mapper

import (
	"time"

	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		at := p.UpdatedAt
		updatedAt = &at
	}

	return &entity.Payment{
		Id:        p.Id,
		TripId:    p.TripId,
		UserId:    p.UserId,
		Provider:  entity.PaymentProvider(p.Provider),
		OrderRef:  p.OrderRef,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    entity.PaymentStatus(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Payment{
		Id:        p.Id,
		TripId:    p.TripId,
		UserId:    p.UserId,
		Provider:  string(p.Provider),
		OrderRef:  p.OrderRef,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *PaymentMapper) ToEntities(payments []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(payments))
	for i, p := range payments {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
