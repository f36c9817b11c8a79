package querybuilder

import "testing"

type insertModelFixture struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
	Ignored   string `db:"-"`
	Untagged  string
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("players", insertModelFixture{
		ID:        "p1",
		Name:      "Ana",
		CreatedAt: 1765000000,
	}, "")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name, created_at) VALUES ($1, $2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "p1" || args[1] != "Ana" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels_MultiRow(t *testing.T) {
	rows := []insertModelFixture{
		{ID: "p1", Name: "Ana", CreatedAt: 1},
		{ID: "p2", Name: "Budi", CreatedAt: 2},
	}

	query, args, err := InsertModels("players", rows, "")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name, created_at) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "p2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels_Empty(t *testing.T) {
	if _, _, err := InsertModels("players", []insertModelFixture{}, ""); err == nil {
		t.Fatalf("expected error for empty model slice")
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	if _, _, err := InsertModel("players", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilModel *insertModelFixture
	if _, _, err := InsertModel("players", nilModel, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
