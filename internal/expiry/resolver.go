package expiry

import (
	"fmt"
	"log/slog"

	"github.com/beptroly/notifier/internal/model"
)

// HouseholdSource is the slice of the household store the resolver needs.
type HouseholdSource interface {
	GetByID(id int64) (*model.Household, error)
	ListMemberIDs(householdID int64) ([]int64, error)
}

// UserSource is the slice of the user store the resolver needs.
type UserSource interface {
	GetByID(id int64) (*model.User, error)
}

// Resolver maps expiring items to the household members who should hear
// about them.
type Resolver struct {
	households HouseholdSource
	users      UserSource
	logger     *slog.Logger
}

func NewResolver(households HouseholdSource, users UserSource, logger *slog.Logger) *Resolver {
	return &Resolver{households: households, users: users, logger: logger}
}

// Resolve walks items in scan order and builds the per-scan target set.
// Missing households, empty member lists, and non-notifiable users are
// warnings that skip the affected item or user; only store failures abort.
func (r *Resolver) Resolve(items []model.InventoryItem) (*TargetSet, error) {
	targets := NewTargetSet()

	for _, item := range items {
		householdID := *item.HouseholdID

		household, err := r.households.GetByID(householdID)
		if err != nil {
			return nil, fmt.Errorf("get household %d: %w", householdID, err)
		}
		if household == nil {
			r.logger.Warn("household not found for item, skipping",
				"household_id", householdID, "item_id", item.ID, "name", item.Name)
			continue
		}

		memberIDs, err := r.households.ListMemberIDs(householdID)
		if err != nil {
			return nil, fmt.Errorf("list members of household %d: %w", householdID, err)
		}
		if len(memberIDs) == 0 {
			r.logger.Warn("household has no members", "household_id", householdID)
			continue
		}

		for _, userID := range memberIDs {
			if !targets.Attempted(userID) {
				targets.MarkAttempted(userID)

				user, err := r.users.GetByID(userID)
				if err != nil {
					return nil, fmt.Errorf("get user %d: %w", userID, err)
				}
				switch {
				case user == nil:
					r.logger.Warn("household member does not exist", "user_id", userID, "household_id", householdID)
				case !user.Notifiable():
					r.logger.Warn("user has no usable push token", "user_id", userID)
				default:
					targets.Add(userID, user.FCMToken)
				}
			}

			targets.Append(userID, item.Name)
		}
	}

	return targets, nil
}
