package teams

import (
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"Abbreviation", "abbreviation"},
		{"City", "city,omitempty"},
		{"Conference", "conference,omitempty"},
		{"Division", "division,omitempty"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestIndexKeysByID(t *testing.T) {
	idx := Index([]Team{{ID: "1", Name: "Boston Celtics"}, {ID: "2", Name: "Miami Heat"}})
	if len(idx) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(idx))
	}
	if idx["2"].Name != "Miami Heat" {
		t.Fatalf("unexpected team for id 2: %+v", idx["2"])
	}
}
