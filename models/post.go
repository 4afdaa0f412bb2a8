package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like marks a single user's like on a post. A user appears at most once in
// Post.Likes; new likes are prepended so the newest comes first.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

// Comment is embedded in a post and only addressable through it.
type Comment struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	User primitive.ObjectID `bson:"user" json:"user"`
	Name string             `bson:"name" json:"name"`
	Text string             `bson:"text" json:"text"`
	Date time.Time          `bson:"date" json:"date"`
}

type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Name     string             `bson:"name" json:"name"` // author name snapshot
	Text     string             `bson:"text" json:"text"`
	Date     time.Time          `bson:"date" json:"date"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
}
