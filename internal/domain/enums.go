package domain

import (
	"fmt"
	"strings"
)

// PostStatus is the lifecycle state of a PostGroup.
type PostStatus string

const (
	StatusPendingReview PostStatus = "PENDING_REVIEW"
	StatusScheduled     PostStatus = "SCHEDULED"
	StatusPublished     PostStatus = "PUBLISHED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []PostStatus{StatusPendingReview, StatusScheduled, StatusPublished}

func (s PostStatus) Valid() bool {
	switch s {
	case StatusPendingReview, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// ParsePostStatus parses a status name, ignoring case.
func ParsePostStatus(v string) (PostStatus, error) {
	s := PostStatus(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid post status %q", v)
	}
	return s, nil
}

// Category is the content pillar a PostGroup belongs to.
type Category string

const (
	CategoryAuthority     Category = "AUTHORITY"
	CategoryCommunity     Category = "COMMUNITY"
	CategoryEducation     Category = "EDUCATION"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryInspiration   Category = "INSPIRATION"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAuthority, CategoryCommunity, CategoryEducation, CategoryEntertainment, CategoryInspiration:
		return true
	}
	return false
}

// ParseCategory parses a category name, ignoring case.
func ParseCategory(v string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(v)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", v)
	}
	return c, nil
}

// Platform is the social network a Post targets.
type Platform string

const (
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformLinkedIn  Platform = "LINKEDIN"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformLinkedIn:
		return true
	}
	return false
}

// ParsePlatform parses a platform name, ignoring case.
func ParsePlatform(v string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid platform %q", v)
	}
	return p, nil
}
