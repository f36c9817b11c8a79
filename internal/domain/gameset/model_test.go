package gameset

import "testing"

func TestGameSet_IsAdmin(t *testing.T) {
	set := GameSet{
		ID:        "set-1",
		CreatorID: "creator",
		AdminIDs:  []string{"admin-1"},
	}

	if !set.IsAdmin("creator") {
		t.Fatalf("creator must always be an admin")
	}
	if !set.IsAdmin("admin-1") {
		t.Fatalf("listed admin must be an admin")
	}
	if set.IsAdmin("stranger") {
		t.Fatalf("unlisted user must not be an admin")
	}
	if set.IsAdmin("") {
		t.Fatalf("empty user id must never be an admin")
	}
}

func TestGameSet_HasPlayer(t *testing.T) {
	set := GameSet{PlayerIDs: []string{"p1", "p2"}}

	if !set.HasPlayer("p1") {
		t.Fatalf("expected p1 on the roster")
	}
	if set.HasPlayer("p3") {
		t.Fatalf("p3 is not on the roster")
	}
}
