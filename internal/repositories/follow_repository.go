package repositories

import (
	"errors"

	"github.com/frekans/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations. ToggleFollow
// is the only write path to the edge table and the user counter columns.
type FollowRepository interface {
	ToggleFollow(followerID, followingID uint) (bool, error)
	EdgeExists(followerID, followingID uint) (bool, error)
	ListFollowers(userID uint) ([]models.FollowListEntry, error)
	ListFollowing(userID uint) ([]models.FollowListEntry, error)
	FollowedIDsAmong(viewerID uint, candidateIDs []uint) ([]uint, error)
	FollowerIDsAmong(viewerID uint, candidateIDs []uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// ToggleFollow creates the edge if absent and deletes it if present, adjusting
// both users' cached degree counters in the same transaction. Returns the new
// follow state. A concurrent toggle on the same pair that wins the insert race
// surfaces as a duplicate key; the toggle then reruns against the edge the
// winner created, which lands on the expected double-click semantics.
func (r *PostgresFollowRepository) ToggleFollow(followerID, followingID uint) (bool, error) {
	var following bool
	toggle := func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			following = false
			return adjustFollowCounts(tx, followerID, followingID, -1)
		}
		follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Create(follow).Error; err != nil {
			return err
		}
		following = true
		return adjustFollowCounts(tx, followerID, followingID, +1)
	}

	err := r.db.Transaction(toggle)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = r.db.Transaction(toggle)
	}
	return following, err
}

// adjustFollowCounts moves the cached degree counters on both user rows by
// delta. Runs only inside the toggle transaction so the counters cannot be
// observed out of step with the edge set.
func adjustFollowCounts(tx *gorm.DB, followerID, followingID uint, delta int) error {
	res := tx.Model(&models.User{}).Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("following_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	res = tx.Model(&models.User{}).Where("id = ?", followingID).
		UpdateColumn("follower_count", gorm.Expr("follower_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EdgeExists reports whether followerID currently follows followingID
func (r *PostgresFollowRepository) EdgeExists(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowers returns the users following userID, most recently followed first
func (r *PostgresFollowRepository) ListFollowers(userID uint) ([]models.FollowListEntry, error) {
	var entries []models.FollowListEntry
	err := r.db.Table("follows").
		Select("users.id AS user_id, users.username, users.avatar_url, users.bio, users.is_verified, users.follower_count, users.following_count, follows.created_at AS followed_at").
		Joins("INNER JOIN users ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

// ListFollowing returns the users userID follows, most recently followed first
func (r *PostgresFollowRepository) ListFollowing(userID uint) ([]models.FollowListEntry, error) {
	var entries []models.FollowListEntry
	err := r.db.Table("follows").
		Select("users.id AS user_id, users.username, users.avatar_url, users.bio, users.is_verified, users.follower_count, users.following_count, follows.created_at AS followed_at").
		Joins("INNER JOIN users ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&entries).Error
	return entries, err
}

// FollowedIDsAmong returns the subset of candidateIDs that viewerID follows
func (r *PostgresFollowRepository) FollowedIDsAmong(viewerID uint, candidateIDs []uint) ([]uint, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", viewerID, candidateIDs).
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowerIDsAmong returns the subset of candidateIDs that follow viewerID
func (r *PostgresFollowRepository) FollowerIDsAmong(viewerID uint, candidateIDs []uint) ([]uint, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ? AND follower_id IN ?", viewerID, candidateIDs).
		Pluck("follower_id", &ids).Error
	return ids, err
}
