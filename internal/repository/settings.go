package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
)

// SettingsRepository manages the merchant bank record and database resets.
type SettingsRepository struct {
	*base
}

// GetBankDetails returns the stored bank record, or the unlinked default.
// Checkout reads it for the merchant UPI id, so it needs no caller.
func (r *SettingsRepository) GetBankDetails(ctx context.Context) (models.BankDetails, error) {
	ctx, err := r.begin(ctx, latency.OpBankGet)
	if err != nil {
		return models.BankDetails{}, err
	}
	return storage.Read(ctx, r.store, storage.KeyBank, models.BankDetails{}), nil
}

// SaveBankDetails overwrites the bank record. Admin only.
func (r *SettingsRepository) SaveBankDetails(ctx context.Context, caller Caller, details models.BankDetails) (models.BankDetails, error) {
	if !caller.canManageSettings() {
		return models.BankDetails{}, ErrForbidden
	}
	ctx, err := r.begin(ctx, latency.OpBankSave)
	if err != nil {
		return models.BankDetails{}, err
	}
	if err := storage.Write(ctx, r.store, storage.KeyBank, details); err != nil {
		return models.BankDetails{}, fmt.Errorf("save bank details: %w", err)
	}
	return details, nil
}

// UnlinkBankDetails resets the bank record to the empty default. Admin only.
func (r *SettingsRepository) UnlinkBankDetails(ctx context.Context, caller Caller) (models.BankDetails, error) {
	return r.SaveBankDetails(ctx, caller, models.BankDetails{})
}

// ResetDatabase deletes every collection, the session and the bank record,
// then seeds the store again. Admin only.
func (r *SettingsRepository) ResetDatabase(ctx context.Context, caller Caller) error {
	if !caller.canManageSettings() {
		return ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpResetDatabase)
	if err != nil {
		return err
	}
	defer unlock()

	if err := storage.Remove(ctx, r.store, storage.AllKeys()...); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	if _, err := seed.Initialize(ctx, r.store, r.seed); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}

	log.Printf("[Settings] database reset by %s", caller.UserID)
	return nil
}
