package model

import "time"

/*

Post is a piece of user-authored content

Id: primary key, a uuid string stored as the document _id
UserId: author reference, immutable after creation
Text: plain text body, optional
Img: hosted image URL, optional; a post carries text, an image, or both
Likes: ids of users who liked this post
Comments: embedded comment documents, append-only, insertion order
CreatedAt: creation time, the sole feed sort key (descending)

Likes is kept in lockstep with each liker's User.LikedPosts: membership of a
user id here must agree with membership of this post's id there. The two are
one logical fact stored in two places.

*/
type Post struct {
	Id        string    `json:"_id" bson:"_id"`
	UserId    string    `json:"userId" bson:"userId"`
	Text      string    `json:"text,omitempty" bson:"text"`
	Img       string    `json:"img,omitempty" bson:"img"`
	Likes     []string  `json:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" bson:"comments"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Comment is embedded in its post. Comments are never edited or removed.
type Comment struct {
	Id        string    `json:"_id" bson:"_id"`
	Text      string    `json:"text" bson:"text"`
	UserId    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// LikedBy reports whether the given user currently likes the post.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
