// Package service orchestrates the domain operations over storage:
// group management, expense recording with settlement recomputation, and
// the debt settle transition.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rachaconta/backend/internal/models"
	"github.com/rachaconta/backend/internal/storage"
)

var (
	ErrEmptyGroupName  = errors.New("group name is required")
	ErrNoMembers       = errors.New("group needs at least one member")
	ErrEmptyMemberName = errors.New("member name is required")
)

// GroupService manages group lifecycle.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create validates and persists a new group. The first member is the
// admin unless adminName names another member.
func (s *GroupService) Create(ctx context.Context, name, location, adminName string, memberNames []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGroupName
	}
	if len(memberNames) == 0 {
		return nil, ErrNoMembers
	}

	members := make([]models.Member, 0, len(memberNames))
	for _, n := range memberNames {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, ErrEmptyMemberName
		}
		members = append(members, models.Member{ID: uuid.New().String(), Name: n})
	}

	// The first member administers the group unless adminName names
	// another member.
	adminID := members[0].ID
	if adminName != "" {
		for _, m := range members {
			if m.Name == adminName {
				adminID = m.ID
				break
			}
		}
	}

	group := &models.Group{
		Name:     name,
		AdminID:  adminID,
		Location: strings.TrimSpace(location),
		Members:  members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members_count", len(group.Members))
	return group, nil
}

// Get retrieves a group with members, expenses and debts.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// List retrieves all groups with their member lists.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Delete removes a group and everything it owns.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}
