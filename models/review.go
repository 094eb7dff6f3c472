package models

import (
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxReviewTitleLen   = 100
	maxReviewCommentLen = 1000
)

// Helpful tracks helpful votes on a review. Users holds the identities
// (user ids or anonymous voter tokens) that already voted, so a voter
// can't vote twice.
type Helpful struct {
	Count int      `bson:"count" json:"count"`
	Users []string `bson:"users" json:"users"`
}

// Review is a rating plus commentary against exactly one place or
// festival. Public (anonymous) submissions carry inline name/email
// instead of a user reference and are exempt from the one-target rule.
type Review struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User     *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Name     string              `bson:"name,omitempty" json:"name,omitempty"`
	Email    string              `bson:"email,omitempty" json:"email,omitempty"`
	Place    *primitive.ObjectID `bson:"place,omitempty" json:"place,omitempty"`
	Festival *primitive.ObjectID `bson:"festival,omitempty" json:"festival,omitempty"`
	Rating   int                 `bson:"rating" json:"rating"`
	Title    string              `bson:"title" json:"title"`
	Comment  string              `bson:"comment" json:"comment"`
	Images   []Image             `bson:"images" json:"images"`
	Helpful  Helpful             `bson:"helpful" json:"helpful"`

	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	IsPublic   bool      `bson:"isPublic" json:"isPublic"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the schema rules, including the one-target
// invariant: place and festival are mutually exclusive and, unless the
// review came through the public path, exactly one must be set.
func (r *Review) Validate() error {
	v := &ValidationError{}
	if r.Rating < 1 || r.Rating > 5 {
		v.Add("rating", "Rating must be between 1 and 5")
	}
	if r.Title == "" {
		v.Add("title", "Review title is required")
	} else if utf8.RuneCountInString(r.Title) > maxReviewTitleLen {
		v.Add("title", "Title cannot be more than 100 characters")
	}
	if r.Comment == "" {
		v.Add("comment", "Review comment is required")
	} else if utf8.RuneCountInString(r.Comment) > maxReviewCommentLen {
		v.Add("comment", "Comment cannot be more than 1000 characters")
	}
	if r.Place != nil && r.Festival != nil {
		v.Add("place", "Cannot specify both place and festival")
	}
	if !r.IsPublic {
		if r.User == nil {
			v.Add("user", "User is required")
		}
		if r.Place == nil && r.Festival == nil {
			v.Add("place", "Either place or festival must be specified")
		}
	} else {
		if r.Name == "" {
			v.Add("name", "Name is required")
		}
		if r.Email == "" {
			v.Add("email", "Valid email is required")
		}
	}
	return v.OrNil()
}

// Target returns the reviewed parent's id and kind ("place" or
// "festival"), or ("", nil) when the review is unbound.
func (r *Review) Target() (string, *primitive.ObjectID) {
	if r.Place != nil {
		return "place", r.Place
	}
	if r.Festival != nil {
		return "festival", r.Festival
	}
	return "", nil
}

// VotedBy reports whether the given voter identity already marked this
// review helpful.
func (r *Review) VotedBy(voter string) bool {
	for _, u := range r.Helpful.Users {
		if u == voter {
			return true
		}
	}
	return false
}
