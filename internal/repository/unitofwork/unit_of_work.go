package unitofwork

import (
	"context"

	"travelorbit-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	OtpRepository() contract.OtpRepository

	TripRepository() contract.TripRepository
	TripMessageRepository() contract.TripMessageRepository
	TripFeedbackRepository() contract.TripFeedbackRepository

	TravelGroupRepository() contract.TravelGroupRepository
	GroupMemberRepository() contract.GroupMemberRepository
	GroupVoteRepository() contract.GroupVoteRepository

	DealRepository() contract.DealRepository
	PaymentRepository() contract.PaymentRepository
}
