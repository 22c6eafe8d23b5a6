package domain

import "time"

// PostGroup is one piece of content prepared for several social platforms at once.
// It goes through review before it is scheduled or published.
type PostGroup struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey;index:idx_post_groups_created_at_id,priority:2"`
	Content       string     `json:"content" gorm:"type:varchar(3000);not null"`
	MediaURLs     []string   `json:"mediaUrls" gorm:"column:media_urls;type:text;serializer:json;not null"`
	Category      Category   `json:"category" gorm:"type:varchar(32);not null;index"`
	Status        PostStatus `json:"status" gorm:"type:varchar(32);not null;index"`
	ScheduledDate time.Time  `json:"scheduledDate" gorm:"not null"`
	PublishedDate *time.Time `json:"publishedDate"`
	Posts         []*Post    `json:"posts" gorm:"foreignKey:PostGroupID;constraint:OnDelete:CASCADE"`
	Version       int64      `json:"-" gorm:"not null"`
	CreatedAt     time.Time  `json:"createdAt" gorm:"not null;index:idx_post_groups_created_at_id,priority:1"`
	UpdatedAt     time.Time  `json:"updatedAt" gorm:"not null"`
}

// CursorKey returns the canonical sort key (createdAt, id) of the group.
func (g *PostGroup) CursorKey() (string, time.Time) {
	return g.ID, g.CreatedAt
}

// Post is the platform-specific rendition of a PostGroup.
type Post struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostGroupID string    `json:"postGroupId" gorm:"type:uuid;not null;index"`
	Platform    Platform  `json:"platform" gorm:"type:varchar(32);not null"`
	Caption     string    `json:"caption" gorm:"type:varchar(3000);not null"`
	Likes       int       `json:"likes" gorm:"not null;default:0"`
	Comments    int       `json:"comments" gorm:"not null;default:0"`
	Shares      int       `json:"shares" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}

// CreatePostInput describes one platform post of a new group.
type CreatePostInput struct {
	Platform Platform `json:"platform"`
	Caption  string   `json:"caption"`
}

// CreatePostGroupInput is everything needed to create a PostGroup with its posts.
type CreatePostGroupInput struct {
	Content       string            `json:"content"`
	MediaURLs     []string          `json:"mediaUrls"`
	Category      Category          `json:"category"`
	ScheduledDate time.Time         `json:"scheduledDate"`
	Posts         []CreatePostInput `json:"posts"`
}
