package model

import (
	"time"

	"github.com/jinzhu/copier"
)

/*

User is a registered account

Id: primary key, a uuid string stored as the document _id
Username: unique handle, used in profile URLs
FullName: display name
Email: unique, used for login recovery
Password: bcrypt hash, must never reach an API response
Followers: ids of users following this user
Following: ids of users this user follows
LikedPosts: ids of posts this user has liked
ProfileImg / CoverImg: hosted image URLs, empty when unset
Bio / Link: free-form profile fields

Followers and Following are two redundant views of the same directed edge:
when A follows B, B.Followers contains A and A.Following contains B, and both
documents are updated together. Neither set ever contains the user's own id.

*/
type User struct {
	Id         string    `json:"_id" bson:"_id"`
	Username   string    `json:"username" bson:"username"`
	FullName   string    `json:"fullName" bson:"fullName"`
	Email      string    `json:"email" bson:"email"`
	Password   string    `json:"password,omitempty" bson:"password"`
	Followers  []string  `json:"followers" bson:"followers"`
	Following  []string  `json:"following" bson:"following"`
	LikedPosts []string  `json:"likedPosts" bson:"likedPosts"`
	ProfileImg string    `json:"profileImg" bson:"profileImg"`
	CoverImg   string    `json:"coverImg" bson:"coverImg"`
	Bio        string    `json:"bio" bson:"bio"`
	Link       string    `json:"link" bson:"link"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// Scrubbed returns a copy of the user safe to serialize in API responses. The
// credential is cleared here rather than relying on store-side projections, so
// a bypassed projection can never leak a hash.
func (u User) Scrubbed() User {
	var out User
	copier.Copy(&out, &u)
	out.Password = ""
	return out
}
