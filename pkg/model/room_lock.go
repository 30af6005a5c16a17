package model

import "time"

// RoomLock is an advisory lock serializing writers of one room across
// service instances. Expired locks are reaped by a TTL index. Token
// identifies the holder so a release never removes a lock taken over by
// another instance after expiry.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
