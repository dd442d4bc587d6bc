package services

import (
	"errors"
	"fmt"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowGraph owns the directed follow relationship between users and derives
// mutual-follow ("friend") status from it. Friendship is never stored; it is
// recomputed from the live edge set on every query so the messaging gate can
// trust it.
type FollowGraph struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowGraph creates a new FollowGraph
func NewFollowGraph(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowGraph {
	return &FollowGraph{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// ToggleFollow flips the follow edge from followerID to followingID and returns
// the resulting state. Edge mutation and counter updates commit atomically;
// on any storage failure nothing is applied.
func (g *FollowGraph) ToggleFollow(followerID, followingID uint) (models.FollowStatus, error) {
	if followerID == followingID {
		return models.FollowStatus{}, fmt.Errorf("%w: cannot follow yourself", ErrInvalidOperation)
	}

	for _, id := range []uint{followerID, followingID} {
		exists, err := g.userRepository.Exists(id)
		if err != nil {
			return models.FollowStatus{}, storageErr("toggle follow", err)
		}
		if !exists {
			return models.FollowStatus{}, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
		}
	}

	isFollowing, err := g.followRepository.ToggleFollow(followerID, followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FollowStatus{}, ErrUserNotFound
		}
		return models.FollowStatus{}, storageErr("toggle follow", err)
	}

	status := models.FollowStatus{IsFollowing: isFollowing}
	if isFollowing {
		reverse, err := g.followRepository.EdgeExists(followingID, followerID)
		if err != nil {
			return models.FollowStatus{}, storageErr("toggle follow", err)
		}
		status.IsFriend = reverse
	}
	return status, nil
}

// AreFriends reports whether both directions of the follow edge exist between
// a and b. Always computed against the live edge set, never cached.
func (g *FollowGraph) AreFriends(a, b uint) (bool, error) {
	forward, err := g.followRepository.EdgeExists(a, b)
	if err != nil {
		return false, storageErr("friend check", err)
	}
	if !forward {
		return false, nil
	}
	reverse, err := g.followRepository.EdgeExists(b, a)
	if err != nil {
		return false, storageErr("friend check", err)
	}
	return reverse, nil
}

// ListFollowers returns the users following userID, most recently followed
// first. When viewerID is non-zero each entry carries the viewer's own
// relationship to the listed user.
func (g *FollowGraph) ListFollowers(userID, viewerID uint) ([]models.FollowListEntry, error) {
	exists, err := g.userRepository.Exists(userID)
	if err != nil {
		return nil, storageErr("list followers", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	entries, err := g.followRepository.ListFollowers(userID)
	if err != nil {
		return nil, storageErr("list followers", err)
	}
	if err := g.annotateForViewer(entries, viewerID); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListFollowing returns the users userID follows, symmetric to ListFollowers.
func (g *FollowGraph) ListFollowing(userID, viewerID uint) ([]models.FollowListEntry, error) {
	exists, err := g.userRepository.Exists(userID)
	if err != nil {
		return nil, storageErr("list following", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	entries, err := g.followRepository.ListFollowing(userID)
	if err != nil {
		return nil, storageErr("list following", err)
	}
	if err := g.annotateForViewer(entries, viewerID); err != nil {
		return nil, err
	}
	return entries, nil
}

// FollowFlags resolves the viewer's relationship to each candidate id in bulk:
// which candidates the viewer follows, and which of those also follow the
// viewer back.
func (g *FollowGraph) FollowFlags(viewerID uint, candidateIDs []uint) (followed map[uint]bool, friends map[uint]bool, err error) {
	followed = make(map[uint]bool)
	friends = make(map[uint]bool)
	if viewerID == 0 || len(candidateIDs) == 0 {
		return followed, friends, nil
	}

	followedIDs, err := g.followRepository.FollowedIDsAmong(viewerID, candidateIDs)
	if err != nil {
		return nil, nil, storageErr("follow flags", err)
	}
	followerIDs, err := g.followRepository.FollowerIDsAmong(viewerID, candidateIDs)
	if err != nil {
		return nil, nil, storageErr("follow flags", err)
	}

	followsBack := make(map[uint]bool, len(followerIDs))
	for _, id := range followerIDs {
		followsBack[id] = true
	}
	for _, id := range followedIDs {
		followed[id] = true
		if followsBack[id] {
			friends[id] = true
		}
	}
	return followed, friends, nil
}

func (g *FollowGraph) annotateForViewer(entries []models.FollowListEntry, viewerID uint) error {
	if viewerID == 0 || len(entries) == 0 {
		return nil
	}
	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	followed, friends, err := g.FollowFlags(viewerID, ids)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].IsFollowedByViewer = followed[entries[i].UserID]
		entries[i].IsFriend = friends[entries[i].UserID]
	}
	return nil
}
