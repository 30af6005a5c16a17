package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingSchema describes one element of a room's embedded bookings array.
var BookingSchema = bson.M{
	"bsonType": "object",
	"required": []string{
		"id",
		"room_id",
		"start_time",
		"end_time",
	},
	"additionalProperties": false,

	"properties": bson.M{
		"id": bson.M{
			"bsonType":  "string",
			"minLength": 1,
		},

		"room_id": bson.M{
			"bsonType":  "string",
			"minLength": 1,
		},

		"start_time": bson.M{
			"bsonType": "date",
		},

		"end_time": bson.M{
			"bsonType": "date",
		},
	},
}
