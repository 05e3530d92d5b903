package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cinema/internal/mock"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testValidator() validators.Validator { return validators.NewRequestValidator(12) }

// runInTx makes the transactor mock execute fn directly.
func runInTx(tx *mock.MockTransactor) {
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func ptr[T any](v T) *T { return &v }

func plainUser(id int64, role models.Role) models.User {
	return models.User{UserID: id, Username: "user", Email: "user@example.com", Role: role, IsActive: true, Money: decimal.NewFromInt(100)}
}

func premiumUser(id int64, until time.Time) models.User {
	u := plainUser(id, models.RoleUser)
	u.IsPremium = true
	u.PremiumUntil = &until
	return u
}

func publicMovie(id, owner int64) models.Movie {
	return models.Movie{MovieID: id, OwnerID: owner, Title: "Heat", IsActive: true, AccessLevel: models.AccessPublic}
}
