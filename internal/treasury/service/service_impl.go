package service

import (
	"context"
	"errors"
	"time"

	"github.com/aquametric/aquatrack/internal/principal"
	treasurydomain "github.com/aquametric/aquatrack/internal/treasury/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) treasurydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("treasury.service"),
		genID: p.GenID,
	}
}

func (s *Service) Transfer(ctx context.Context, from, to principal.Principal, amount uint64, memo string) error {
	if from.IsZero() || to.IsZero() {
		return treasurydomain.ErrInvalidPrincipal
	}
	if amount == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payer, err := findAccount(tx, from)
		if err != nil {
			return err
		}
		if payer == nil {
			return treasurydomain.ErrAccountNotFound
		}
		if payer.Balance < amount {
			return treasurydomain.ErrInsufficientFunds
		}

		now := time.Now().UTC()
		if err := tx.Exec(
			`UPDATE treasury_accounts SET balance = balance - ?, updated_at = ? WHERE principal = ?`,
			amount, now, from.String(),
		).Error; err != nil {
			return err
		}
		if err := creditAccount(tx, to, amount, now); err != nil {
			return err
		}

		return tx.Create(&treasurydomain.TransferRecord{
			ID:            s.genID.Generate(),
			FromPrincipal: from.String(),
			ToPrincipal:   to.String(),
			Amount:        amount,
			Memo:          memo,
			CreatedAt:     now,
		}).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("transfer settled",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Uint64("amount", amount),
		zap.String("memo", memo),
	)
	return nil
}

func (s *Service) Deposit(ctx context.Context, to principal.Principal, amount uint64) (*treasurydomain.Account, error) {
	if to.IsZero() {
		return nil, treasurydomain.ErrInvalidPrincipal
	}
	if amount == 0 {
		return nil, treasurydomain.ErrInvalidAmount
	}

	var account *treasurydomain.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := creditAccount(tx, to, amount, now); err != nil {
			return err
		}
		found, err := findAccount(tx, to)
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) Balance(ctx context.Context, p principal.Principal) (*treasurydomain.Account, error) {
	if p.IsZero() {
		return nil, treasurydomain.ErrInvalidPrincipal
	}
	account, err := findAccount(s.db.WithContext(ctx), p)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, treasurydomain.ErrAccountNotFound
	}
	return account, nil
}

func findAccount(tx *gorm.DB, p principal.Principal) (*treasurydomain.Account, error) {
	var account treasurydomain.Account
	err := tx.Where("principal = ?", p.String()).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func creditAccount(tx *gorm.DB, to principal.Principal, amount uint64, now time.Time) error {
	existing, err := findAccount(tx, to)
	if err != nil {
		return err
	}
	if existing == nil {
		return tx.Create(&treasurydomain.Account{
			Principal: to.String(),
			Balance:   amount,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	}
	return tx.Exec(
		`UPDATE treasury_accounts SET balance = balance + ?, updated_at = ? WHERE principal = ?`,
		amount, now, to.String(),
	).Error
}
