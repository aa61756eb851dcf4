package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestConversation_Fields(t *testing.T) {
	typ := reflect.TypeOf(Conversation{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "UserNumber", "size:32")
	assertGormTag(t, typ, "UserNumber", "index")
	assertGormTag(t, typ, "StartTime", "index")
	assertGormTag(t, typ, "Domain", "size:16")
	assertGormTag(t, typ, "Domain", "default:unknown")
	assertGormTag(t, typ, "Status", "size:16")
	assertGormTag(t, typ, "Status", "default:open")
	assertGormTag(t, typ, "Status", "index")
	assertGormTag(t, typ, "NeedsHuman", "default:false")
	assertGormTag(t, typ, "Sentiment", "size:16")

	assertFieldType(t, typ, "ID", "string")
	assertFieldType(t, typ, "StartTime", "time.Time")
	assertFieldType(t, typ, "EndTime", "*time.Time")
	assertFieldType(t, typ, "Sentiment", "*string")
	assertFieldType(t, typ, "SentimentScore", "*float64")
	assertFieldType(t, typ, "LastSentimentUpdate", "*time.Time")
}

func TestConversation_Relations(t *testing.T) {
	typ := reflect.TypeOf(Conversation{})

	assertGormTag(t, typ, "Messages", "foreignKey:ConversationID")
	assertFieldType(t, typ, "Messages", "[]models.Message")
}

func TestMessage_Fields(t *testing.T) {
	typ := reflect.TypeOf(Message{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Seq", "not null")
	assertGormTag(t, typ, "Seq", "index")
	assertGormTag(t, typ, "ConversationID", "size:36")
	assertGormTag(t, typ, "ConversationID", "index")
	assertGormTag(t, typ, "Content", "type:text")
	assertGormTag(t, typ, "Domain", "default:unknown")

	// A default on a bool makes the ORM drop zero values from inserts;
	// FromUser=false (bot replies) must reach the database intact.
	if tag := gormTag(t, typ, "FromUser"); strings.Contains(tag, "default") {
		t.Errorf("Message.FromUser gorm tag = %q, must not carry a default", tag)
	}
	assertGormTag(t, typ, "Timestamp", "index")

	assertFieldType(t, typ, "ID", "string")
	assertFieldType(t, typ, "Seq", "int")
	assertFieldType(t, typ, "FromUser", "bool")
	assertFieldType(t, typ, "Timestamp", "time.Time")
}

func TestStatusConstants(t *testing.T) {
	if StatusOpen != "open" || StatusClosed != "closed" {
		t.Errorf("status constants = %q/%q, want open/closed", StatusOpen, StatusClosed)
	}
}

func TestSentimentConstants(t *testing.T) {
	for _, s := range []string{SentimentPositive, SentimentNeutral, SentimentNegative} {
		if s != strings.ToUpper(s) {
			t.Errorf("sentiment label %q should be upper-case", s)
		}
	}
}
