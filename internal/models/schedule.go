package models

import (
	"time"

	"github.com/google/uuid"
)

// Supported publishing platforms.
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
)

// SupportedPlatform reports whether p is one of the platforms posts can
// target.
func SupportedPlatform(p string) bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformTwitter, PlatformLinkedIn, PlatformTikTok:
		return true
	default:
		return false
	}
}

// Post is one scheduled publication embedded in a schedule. Posts are not
// independently addressable rows; they only exist inside their schedule's
// document and are identified by an ID unique within that schedule.
type Post struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	PostText  string    `json:"postText"`
	PostDate  string    `json:"postDate"`
	PostTime  string    `json:"postTime"`
	ImagePath string    `json:"imagePath"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"created_at"`
}

// PostUpdate carries a partial update for an embedded post. Empty strings
// mean "leave the current value alone", never "clear it".
type PostUpdate struct {
	Platform  string
	PostText  string
	PostDate  string
	PostTime  string
	ImagePath string
	ImageURL  string
}

// PostList is the ordered collection of posts owned by one schedule. Order is
// insertion order; removal never renumbers or reorders the survivors. All
// mutation of embedded posts goes through these methods so the ID-uniqueness
// and merge rules hold everywhere.
type PostList []Post

// Schedule is the per-user posting schedule. Exactly one exists per user and
// it owns its posts exclusively; Posts is persisted as a single JSON document
// column so a schedule save is one atomic row update.
type Schedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Posts     PostList  `gorm:"serializer:json" json:"posts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Insert assigns a fresh identifier, stamps the creation time and appends the
// post to the end of the list. The stored post is returned.
func (l *PostList) Insert(post Post) Post {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	*l = append(*l, post)
	return post
}

// FindByID returns the post with the given identifier. A malformed identifier
// is indistinguishable from an absent one: both are a plain not-found.
func (l PostList) FindByID(id string) (Post, error) {
	for _, p := range l {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, NewNotFoundError("Post", id)
}

// Apply merges the non-empty fields of upd over the post with the given
// identifier. When the update carries a replacement image, the path being
// vacated is returned so the caller can reconcile it once the mutation is
// durable; otherwise supersededImage is empty.
func (l PostList) Apply(id string, upd PostUpdate) (supersededImage string, err error) {
	for i := range l {
		if l[i].ID != id {
			continue
		}
		p := &l[i]
		if upd.Platform != "" {
			p.Platform = upd.Platform
		}
		if upd.PostText != "" {
			p.PostText = upd.PostText
		}
		if upd.PostDate != "" {
			p.PostDate = upd.PostDate
		}
		if upd.PostTime != "" {
			p.PostTime = upd.PostTime
		}
		if upd.ImagePath != "" && upd.ImagePath != p.ImagePath {
			supersededImage = p.ImagePath
			p.ImagePath = upd.ImagePath
			p.ImageURL = upd.ImageURL
		}
		return supersededImage, nil
	}
	return "", NewNotFoundError("Post", id)
}

// Remove deletes the post with the given identifier from the list, keeping
// the remaining posts in order, and returns the removed post's image path for
// reconciliation.
func (l *PostList) Remove(id string) (imagePath string, err error) {
	posts := *l
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		imagePath = posts[i].ImagePath
		*l = append(posts[:i], posts[i+1:]...)
		return imagePath, nil
	}
	return "", NewNotFoundError("Post", id)
}
