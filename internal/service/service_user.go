package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/policy"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
)

type userService struct {
	users     store.UserRepository
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

func NewUserService(users store.UserRepository, validator validators.Validator, now func() time.Time, logger *logger.Logger) UserService {
	return &userService{
		users:     users,
		validator: validator,
		now:       now,
		logger:    logger,
	}
}

// GetProfile re-reads the actor and reconciles an elapsed subscription,
// writing only when the status actually changed.
func (s *userService) GetProfile(ctx context.Context, actor models.User) (models.User, error) {
	user, err := s.activeUser(ctx, actor.UserID)
	if err != nil {
		return models.User{}, err
	}

	if err = reconcilePremium(ctx, s.users, &user, s.now()); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, actor models.User, userID int64) (models.UserView, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return models.UserView{}, err
	}

	return s.view(actor, user), nil
}

func (s *userService) GetUserByUsername(ctx context.Context, actor models.User, username string) (models.UserView, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return models.UserView{}, fmt.Errorf("error getting user %q: %w", username, err)
	}

	return s.view(actor, user), nil
}

func (s *userService) ListUsers(ctx context.Context, actor models.User, page models.Page) ([]models.UserView, error) {
	users, err := s.users.ListActiveUsers(ctx, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, s.view(actor, u))
	}
	return views, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor models.User, userID int64, patch models.UserPatch) (models.User, error) {
	patch = patch.Normalize()
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.guardedTarget(ctx, actor, userID); err != nil {
		return models.User{}, err
	}

	updated, err := s.users.UpdateUser(ctx, userID, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating user %d: %w", userID, err)
	}
	return updated, nil
}

// DeactivateUser soft-deletes the account and returns its id.
func (s *userService) DeactivateUser(ctx context.Context, actor models.User, userID int64) (int64, error) {
	if _, err := s.guardedTarget(ctx, actor, userID); err != nil {
		return 0, err
	}

	if err := s.users.DeactivateUser(ctx, userID); err != nil {
		return 0, fmt.Errorf("error deactivating user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Int64("actor_id", actor.UserID).Msg("user deactivated")
	return userID, nil
}

func (s *userService) ChangeRole(ctx context.Context, actor models.User, userID int64, role models.Role) (models.User, error) {
	if err := s.validator.Validate(ctx, models.RoleChangeRequest{Role: role}); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	target, err := s.activeUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !policy.CanChangeRole(actor, target, role) {
		return models.User{}, fmt.Errorf("%w: role change by %s", ErrForbidden, actor.Role)
	}

	updated, err := s.users.SetRole(ctx, userID, role)
	if err != nil {
		return models.User{}, fmt.Errorf("error changing role of user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Str("old_role", target.Role.String()).
		Str("new_role", role.String()).
		Msg("role changed")
	return updated, nil
}

// SetLevel clamps level into range and recomputes the title.
func (s *userService) SetLevel(ctx context.Context, actor models.User, userID int64, level int) (models.User, error) {
	if _, err := s.guardedTarget(ctx, actor, userID); err != nil {
		return models.User{}, err
	}

	level = models.ClampLevel(level)
	updated, err := s.users.SetLevel(ctx, userID, level, models.TitleForLevel(level))
	if err != nil {
		return models.User{}, fmt.Errorf("error setting level of user %d: %w", userID, err)
	}
	return updated, nil
}

func (s *userService) AddMoney(ctx context.Context, actor models.User, userID int64, amount decimal.Decimal) (models.BalanceResponse, error) {
	if err := s.validator.Validate(ctx, models.AddMoneyRequest{Amount: amount}); err != nil {
		return models.BalanceResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	target, err := s.activeUser(ctx, userID)
	if err != nil {
		return models.BalanceResponse{}, err
	}
	if !policy.CanTopUp(actor, target) {
		return models.BalanceResponse{}, fmt.Errorf("%w: top up of user %d", ErrForbidden, userID)
	}

	balance, err := s.users.AddMoney(ctx, userID, amount)
	if err != nil {
		return models.BalanceResponse{}, fmt.Errorf("error adding money to user %d: %w", userID, err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Str("amount", amount.String()).
		Str("balance", balance.String()).
		Msg("balance topped up")
	return models.BalanceResponse{UserID: userID, Balance: balance}, nil
}

// guardedTarget loads an active target user and checks that actor may
// modify it.
func (s *userService) guardedTarget(ctx context.Context, actor models.User, userID int64) (models.User, error) {
	target, err := s.activeUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !policy.CanModifyUser(actor, target) {
		return models.User{}, fmt.Errorf("%w: %s on user %d", ErrForbidden, actor.Role, userID)
	}
	return target, nil
}

func (s *userService) activeUser(ctx context.Context, userID int64) (models.User, error) {
	return activeUser(ctx, s.users, userID)
}

func (s *userService) view(actor, user models.User) models.UserView {
	return models.UserView{User: user, Full: policy.CanViewFullProfile(actor, user)}
}

// activeUser treats a deactivated account as missing.
func activeUser(ctx context.Context, users store.UserRepository, userID int64) (models.User, error) {
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user %d: %w", userID, err)
	}
	if !user.IsActive {
		return models.User{}, fmt.Errorf("user %d: %w", userID, store.ErrUserNotFound)
	}
	return user, nil
}

// reconcilePremium clears an elapsed subscription on user and persists the
// change. Nothing is written when the status is unchanged.
func reconcilePremium(ctx context.Context, users store.UserRepository, user *models.User, now time.Time) error {
	previous := user.PremiumUntil
	if _, changed := user.ReconcilePremium(now); !changed {
		return nil
	}

	if _, err := users.ClearExpiredPremium(ctx, user.UserID, now); err != nil {
		return fmt.Errorf("error reconciling premium of user %d: %w", user.UserID, err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", user.UserID).
		Any("premium_until", previous).
		Msg("premium expired")
	return nil
}
