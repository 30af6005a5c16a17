package mongo

import (
	"reflect"
	"roombook/internal/migrations/mongo/validators"
	"roombook/pkg/model"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func bsonFields(t *testing.T, v any) []string {
	t.Helper()
	typ := reflect.TypeOf(v)
	fields := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("bson")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}

func schemaOf(t *testing.T, validator bson.M) bson.M {
	t.Helper()
	schema, ok := validator["$jsonSchema"].(bson.M)
	if !ok {
		t.Fatal("validator has no $jsonSchema")
	}
	return schema
}

func assertCoversFields(t *testing.T, schema bson.M, fields []string) {
	t.Helper()
	props, ok := schema["properties"].(bson.M)
	if !ok {
		t.Fatal("schema has no properties")
	}
	required, _ := schema["required"].([]string)

	for _, f := range fields {
		if _, ok := props[f]; !ok {
			t.Errorf("schema is missing property %q", f)
		}
		found := false
		for _, r := range required {
			if r == f {
				found = true
			}
		}
		if !found {
			t.Errorf("field %q is not required", f)
		}
	}
}

func TestRoomValidatorMatchesModel(t *testing.T) {
	assertCoversFields(t, schemaOf(t, validators.RoomValidator), bsonFields(t, model.Room{}))
	assertCoversFields(t, validators.BookingSchema, bsonFields(t, model.Booking{}))
}

func TestRoomLockValidatorMatchesModel(t *testing.T) {
	assertCoversFields(t, schemaOf(t, validators.RoomLockValidator), bsonFields(t, model.RoomLock{}))
}

func TestCollections(t *testing.T) {
	defs := Collections()
	if len(defs) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(defs))
	}

	var ttlFound bool
	for _, def := range defs {
		if def.Validator == nil {
			t.Errorf("collection %s has no validator", def.Name)
		}
		for _, idx := range def.Indexes {
			if idx.Options != nil && idx.Options.ExpireAfterSeconds != nil {
				ttlFound = true
				if *idx.Options.ExpireAfterSeconds != 0 {
					t.Errorf("TTL index should expire at expires_at, got %d", *idx.Options.ExpireAfterSeconds)
				}
			}
		}
	}
	if !ttlFound {
		t.Error("expected a TTL index on the lock collection")
	}
}
