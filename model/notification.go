package model

import "time"

const (
	NotificationTypeFollow = "follow"
	NotificationTypeLike   = "like"
)

/*

Notification is an append-only engagement record

Id: primary key, a uuid string stored as the document _id
From: id of the user who triggered the notification
To: id of the user being notified
Type: "follow" or "like"
CreatedAt: creation time

A notification is written only when a NEW follow or NEW like happens, never on
the corresponding undo. Once written it is never mutated.

*/
type Notification struct {
	Id        string    `json:"_id" bson:"_id"`
	From      string    `json:"from" bson:"from"`
	To        string    `json:"to" bson:"to"`
	Type      string    `json:"type" bson:"type"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
