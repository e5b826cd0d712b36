package liststore

import (
	"os"
	"testing"

	"github.com/chefassist/marketrun/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "marketrun-store-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMissingUserReturnsZeroState(t *testing.T) {
	db := testDB(t)
	state, err := db.Get("nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Recipes) != 0 || len(state.Overrides) != 0 || len(state.Pantry) != 0 {
		t.Errorf("missing user state = %+v, want zero", state)
	}
}

func TestSaveAndGetRoundtrip(t *testing.T) {
	db := testDB(t)

	in := models.ListState{
		Recipes: []models.RecipeEntry{
			{Name: "Soup", Items: []models.Ingredient{{Name: "garlic", Quantity: "2", Unit: "cloves"}}},
		},
		Overrides: map[string]models.Override{"garlic": {Remove: true}},
		Pantry:    []string{"salt"},
	}
	if err := db.Save("alice", in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := db.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out.Recipes) != 1 || out.Recipes[0].Name != "Soup" {
		t.Errorf("recipes = %+v", out.Recipes)
	}
	if !out.Overrides["garlic"].Remove {
		t.Error("override lost in roundtrip")
	}
	if len(out.Pantry) != 1 || out.Pantry[0] != "salt" {
		t.Errorf("pantry = %v", out.Pantry)
	}
}

func TestSaveOverwrites(t *testing.T) {
	db := testDB(t)

	if err := db.Save("bob", models.ListState{Pantry: []string{"salt"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Save("bob", models.ListState{Pantry: []string{"pepper"}}); err != nil {
		t.Fatal(err)
	}
	out, err := db.Get("bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Pantry) != 1 || out.Pantry[0] != "pepper" {
		t.Errorf("pantry = %v, want [pepper]", out.Pantry)
	}
}

func TestUsersIsolated(t *testing.T) {
	db := testDB(t)

	if err := db.Save("alice", models.ListState{Pantry: []string{"salt"}}); err != nil {
		t.Fatal(err)
	}
	out, err := db.Get("bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Pantry) != 0 {
		t.Errorf("bob sees alice's state: %+v", out)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)

	if err := db.Save("alice", models.ListState{Pantry: []string{"salt"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	out, err := db.Get("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Pantry) != 0 {
		t.Errorf("state survived delete: %+v", out)
	}
}
