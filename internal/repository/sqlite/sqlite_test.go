package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	migrations "github.com/jpereira/homecheck/db"
	dbpkg "github.com/jpereira/homecheck/internal/db"
	"github.com/jpereira/homecheck/internal/models"
	sqlite "github.com/jpereira/homecheck/internal/repository/sqlite"
)

var dbSeq int

// setupRepo opens a fresh shared-cache in-memory database and applies the
// embedded migrations, so tests run against the real schema.
func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	dbSeq++
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq)
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbpkg.Migrate(ctx, d, migrations.Migrations); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

// seedInspector creates a user row to satisfy the inspector foreign key.
func seedInspector(t *testing.T, repo *sqlite.SQLiteRepo, email string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), &models.User{Name: "Inspector", Email: email, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("seed inspector: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil user")
	}

	got, err := repo.GetByID(ctx, 9999)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for non-existing ID, got: %#v", got)
	}

	got, err = repo.GetByEmail(ctx, "a@a.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for non-existing email, got: %#v", got)
	}

	u := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	id, err := repo.CreateUser(ctx, u)
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got == nil || got.Email != u.Email {
		t.Fatalf("GetByID wrong result: %#v", got)
	}

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("GetByEmail wrong result: %#v", byEmail)
	}

	// the email column is unique
	if _, err := repo.CreateUser(ctx, &models.User{Name: "Dup", Email: u.Email, PasswordHash: "x"}); err == nil {
		t.Fatalf("expected error for duplicate email")
	}
}

func TestHouseCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateHouse(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil house")
	}

	ids := make([]int64, 0, 3)
	for i, name := range []string{"First", "Second", "Third"} {
		id, err := repo.CreateHouse(ctx, &models.House{Name: name, Created: int64(1000 + i)})
		if err != nil {
			t.Fatalf("CreateHouse %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	houses, err := repo.ListHouses(ctx)
	if err != nil {
		t.Fatalf("ListHouses error: %v", err)
	}
	if len(houses) != 3 {
		t.Fatalf("expected 3 houses, got %d", len(houses))
	}
	if houses[0].Name != "Third" {
		t.Fatalf("expected most recent house first, got %q", houses[0].Name)
	}

	h, err := repo.GetHouse(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetHouse error: %v", err)
	}
	if h == nil || h.Name != "First" {
		t.Fatalf("GetHouse wrong result: %#v", h)
	}

	h.Name = "Renamed"
	if err := repo.UpdateHouse(ctx, h); err != nil {
		t.Fatalf("UpdateHouse error: %v", err)
	}
	h2, err := repo.GetHouse(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetHouse after update: %v", err)
	}
	if h2.Name != "Renamed" {
		t.Fatalf("update not persisted: %#v", h2)
	}

	if err := repo.DeleteHouse(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteHouse error: %v", err)
	}
	after, err := repo.GetHouse(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetHouse after delete: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil after delete, got: %#v", after)
	}
}

func TestRoomCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	houseID, err := repo.CreateHouse(ctx, &models.House{Name: "A"})
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}
	otherID, err := repo.CreateHouse(ctx, &models.House{Name: "B"})
	if err != nil {
		t.Fatalf("CreateHouse: %v", err)
	}

	kitchenID, err := repo.CreateRoom(ctx, &models.Room{HouseID: houseID, Name: "Kitchen", Created: 1})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err := repo.CreateRoom(ctx, &models.Room{HouseID: houseID, Name: "Bedroom", Created: 2}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err := repo.CreateRoom(ctx, &models.Room{HouseID: otherID, Name: "Garage", Created: 3}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	rooms, err := repo.ListRoomsByHouse(ctx, houseID)
	if err != nil {
		t.Fatalf("ListRoomsByHouse: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Bedroom" {
		t.Fatalf("expected most recent room first, got %q", rooms[0].Name)
	}

	rm, err := repo.GetRoom(ctx, kitchenID)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	rm.Name = "Pantry"
	if err := repo.UpdateRoom(ctx, rm); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	rm2, err := repo.GetRoom(ctx, kitchenID)
	if err != nil {
		t.Fatalf("GetRoom after update: %v", err)
	}
	if rm2.Name != "Pantry" {
		t.Fatalf("update not persisted: %#v", rm2)
	}

	if err := repo.DeleteRoom(ctx, kitchenID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	gone, err := repo.GetRoom(ctx, kitchenID)
	if err != nil {
		t.Fatalf("GetRoom after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected nil after delete, got: %#v", gone)
	}
}

func TestInspectionCRUDAndScoping(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	me := seedInspector(t, repo, "me@example.com")
	other := seedInspector(t, repo, "other@example.com")
	houseID, _ := repo.CreateHouse(ctx, &models.House{Name: "A"})
	roomID, _ := repo.CreateRoom(ctx, &models.Room{HouseID: houseID, Name: "Kitchen"})

	id, err := repo.CreateInspection(ctx, &models.Inspection{RoomID: roomID, InspectorID: me, Notes: "leaky tap", Created: 1})
	if err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}
	if _, err := repo.CreateInspection(ctx, &models.Inspection{RoomID: roomID, InspectorID: other, Notes: "not mine", Created: 2}); err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}

	got, err := repo.GetInspection(ctx, id)
	if err != nil {
		t.Fatalf("GetInspection: %v", err)
	}
	if got == nil || got.Status != models.StatusPending {
		t.Fatalf("expected default status pending, got: %#v", got)
	}

	mine, err := repo.ListInspectionsByRoom(ctx, roomID, me)
	if err != nil {
		t.Fatalf("ListInspectionsByRoom: %v", err)
	}
	if len(mine) != 1 || mine[0].InspectorID != me {
		t.Fatalf("expected only my records, got: %#v", mine)
	}

	got.Status = models.StatusCompleted
	got.Notes = "fixed"
	if err := repo.UpdateInspection(ctx, got); err != nil {
		t.Fatalf("UpdateInspection: %v", err)
	}
	got2, err := repo.GetInspection(ctx, id)
	if err != nil {
		t.Fatalf("GetInspection after update: %v", err)
	}
	if got2.Status != models.StatusCompleted || got2.Notes != "fixed" {
		t.Fatalf("update not persisted: %#v", got2)
	}

	if err := repo.DeleteInspection(ctx, id); err != nil {
		t.Fatalf("DeleteInspection: %v", err)
	}
	gone, err := repo.GetInspection(ctx, id)
	if err != nil {
		t.Fatalf("GetInspection after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected nil after delete, got: %#v", gone)
	}
}

func TestImageLifecycle(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	inspectorID := seedInspector(t, repo, "me@example.com")
	houseID, _ := repo.CreateHouse(ctx, &models.House{Name: "A"})
	roomID, _ := repo.CreateRoom(ctx, &models.Room{HouseID: houseID, Name: "Kitchen"})
	inspID, _ := repo.CreateInspection(ctx, &models.Inspection{RoomID: roomID, InspectorID: inspectorID})

	// a fresh row starts as a pending marker and is invisible to listings
	id, err := repo.CreateImage(ctx, &models.InspectionImage{InspectionID: inspID, StorageKey: "inspections/1_1_a.jpg", Created: 100})
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	imgs, err := repo.ListImagesByInspection(ctx, inspID)
	if err != nil {
		t.Fatalf("ListImagesByInspection: %v", err)
	}
	if len(imgs) != 0 {
		t.Fatalf("pending marker must not be listed, got: %#v", imgs)
	}

	pending, err := repo.ListPendingImagesBefore(ctx, 200)
	if err != nil {
		t.Fatalf("ListPendingImagesBefore: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("expected one pending marker, got: %#v", pending)
	}
	pending, err = repo.ListPendingImagesBefore(ctx, 50)
	if err != nil {
		t.Fatalf("ListPendingImagesBefore: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("marker newer than cutoff must not appear, got: %#v", pending)
	}

	if err := repo.LinkImage(ctx, id, "https://x/a.jpg"); err != nil {
		t.Fatalf("LinkImage: %v", err)
	}
	imgs, err = repo.ListImagesByInspection(ctx, inspID)
	if err != nil {
		t.Fatalf("ListImagesByInspection: %v", err)
	}
	if len(imgs) != 1 || imgs[0].URL != "https://x/a.jpg" || imgs[0].State != models.ImageLinked {
		t.Fatalf("expected one linked image, got: %#v", imgs)
	}

	if err := repo.DeleteImage(ctx, id); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	gone, err := repo.GetImage(ctx, id)
	if err != nil {
		t.Fatalf("GetImage after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected nil after delete, got: %#v", gone)
	}
}

// Deleting a house must take its rooms, inspections and image rows with it.
func TestDeleteHouseCascades(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	inspectorID := seedInspector(t, repo, "me@example.com")
	houseID, _ := repo.CreateHouse(ctx, &models.House{Name: "A"})
	roomID, _ := repo.CreateRoom(ctx, &models.Room{HouseID: houseID, Name: "Kitchen"})
	inspID, _ := repo.CreateInspection(ctx, &models.Inspection{RoomID: roomID, InspectorID: inspectorID})
	imgID, err := repo.CreateImage(ctx, &models.InspectionImage{InspectionID: inspID, StorageKey: "k"})
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}

	if err := repo.DeleteHouse(ctx, houseID); err != nil {
		t.Fatalf("DeleteHouse: %v", err)
	}

	if rm, _ := repo.GetRoom(ctx, roomID); rm != nil {
		t.Fatalf("room survived house delete: %#v", rm)
	}
	if insp, _ := repo.GetInspection(ctx, inspID); insp != nil {
		t.Fatalf("inspection survived house delete: %#v", insp)
	}
	if img, _ := repo.GetImage(ctx, imgID); img != nil {
		t.Fatalf("image row survived house delete: %#v", img)
	}
}
