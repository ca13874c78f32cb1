package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/slogx"
)

var (
	ErrDeviceIDRequired = errors.New("device_id_required")
	ErrInvalidDeviceID  = errors.New("invalid_device_id")
)

// DeviceTracker validates hardware identifiers and maintains the
// account-to-device binding. Legacy seasons never reach it; callers skip the
// tracker entirely for those builds.
type DeviceTracker struct {
	Store store.Store
}

// PreCheck validates the presented hardware id and looks up whichever
// account is currently bound to it. A banned bound account rejects the
// request before the caller even resolves who is authenticating. The bound
// account (nil when the device is unknown) is returned for the post-check.
func (t *DeviceTracker) PreCheck(ctx context.Context, deviceID string) (*domain.Account, error) {
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}
	if !domain.ValidDeviceID(deviceID) {
		return nil, ErrInvalidDeviceID
	}

	bound, err := t.Store.Accounts().GetAccountByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if bound.Banned {
		slogx.FromContext(ctx).Info("rejected banned device binding",
			slog.String("device_id", deviceID),
			slog.String("account_id", bound.ID),
		)
		return &bound, ErrAccountBanned
	}

	return &bound, nil
}

// PostCheck runs after the grant dispatcher has resolved the authenticating
// account. The account is rebound to the presented device id no matter what
// was bound before; the request is then rejected only when the
// authenticating account AND the previously bound account are both banned.
// That exact condition is load-bearing for old clients, keep it as is.
func (t *DeviceTracker) PostCheck(ctx context.Context, account *domain.Account, bound *domain.Account, deviceID string) error {
	if err := t.Store.Accounts().UpdateDeviceID(ctx, account.ID, deviceID); err != nil {
		return err
	}
	account.DeviceID = &deviceID

	if account.Banned && bound != nil && bound.Banned {
		return ErrAccountBanned
	}

	return nil
}
