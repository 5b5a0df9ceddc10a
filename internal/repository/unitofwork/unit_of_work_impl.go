package unitofwork

import (
	"context"
	"fmt"

	"travelorbit-be/internal/repository/contract"
	"travelorbit-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OtpRepository() contract.OtpRepository {
	return implementation.NewOtpRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TripRepository() contract.TripRepository {
	return implementation.NewTripRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TripMessageRepository() contract.TripMessageRepository {
	return implementation.NewTripMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TripFeedbackRepository() contract.TripFeedbackRepository {
	return implementation.NewTripFeedbackRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TravelGroupRepository() contract.TravelGroupRepository {
	return implementation.NewTravelGroupRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GroupMemberRepository() contract.GroupMemberRepository {
	return implementation.NewGroupMemberRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GroupVoteRepository() contract.GroupVoteRepository {
	return implementation.NewGroupVoteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DealRepository() contract.DealRepository {
	return implementation.NewDealRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return implementation.NewPaymentRepository(u.getDB())
}
