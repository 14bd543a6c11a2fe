package sqlite

import (
	"context"

	"github.com/jpereira/homecheck/internal/models"
)

// LoadTree assembles the house->room->inspection->image hierarchy for one
// inspector. Instead of fanning out one query per house and per room, it runs
// four flat queries and joins them in memory, so the cost is constant in the
// number of houses. Inspections belonging to other inspectors are excluded;
// houses and rooms without inspections still appear with empty branches.
func (r *SQLiteRepo) LoadTree(ctx context.Context, inspectorID int64) ([]models.HouseNode, error) {
	houses, err := r.ListHouses(ctx)
	if err != nil {
		return nil, err
	}

	roomRows, err := r.conn.QueryRows(ctx, `SELECT id, house_id, name, created FROM rooms ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer roomRows.Close()

	roomsByHouse := make(map[int64][]models.Room)
	for roomRows.Next() {
		var rm models.Room
		if err := roomRows.Scan(&rm.ID, &rm.HouseID, &rm.Name, &rm.Created); err != nil {
			return nil, err
		}
		roomsByHouse[rm.HouseID] = append(roomsByHouse[rm.HouseID], rm)
	}
	if err := roomRows.Err(); err != nil {
		return nil, err
	}

	inspRows, err := r.conn.QueryRows(ctx, `SELECT id, room_id, inspector_id, status, notes, created FROM inspections WHERE inspector_id = ? ORDER BY created DESC, id DESC`, inspectorID)
	if err != nil {
		return nil, err
	}
	defer inspRows.Close()

	inspectionsByRoom := make(map[int64][]models.Inspection)
	for inspRows.Next() {
		var i models.Inspection
		if err := inspRows.Scan(&i.ID, &i.RoomID, &i.InspectorID, &i.Status, &i.Notes, &i.Created); err != nil {
			return nil, err
		}
		inspectionsByRoom[i.RoomID] = append(inspectionsByRoom[i.RoomID], i)
	}
	if err := inspRows.Err(); err != nil {
		return nil, err
	}

	imgRows, err := r.conn.QueryRows(ctx, `SELECT ii.id, ii.inspection_id, ii.storage_key, ii.url, ii.state, ii.created
		FROM inspection_images ii
		JOIN inspections i ON i.id = ii.inspection_id
		WHERE i.inspector_id = ? AND ii.state = ?
		ORDER BY ii.id ASC`, inspectorID, models.ImageLinked)
	if err != nil {
		return nil, err
	}
	defer imgRows.Close()

	imagesByInspection := make(map[int64][]models.InspectionImage)
	for imgRows.Next() {
		var img models.InspectionImage
		if err := imgRows.Scan(&img.ID, &img.InspectionID, &img.StorageKey, &img.URL, &img.State, &img.Created); err != nil {
			return nil, err
		}
		imagesByInspection[img.InspectionID] = append(imagesByInspection[img.InspectionID], img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.HouseNode, 0, len(houses))
	for _, h := range houses {
		hn := models.HouseNode{House: h, Rooms: []models.RoomNode{}}
		for _, rm := range roomsByHouse[h.ID] {
			rn := models.RoomNode{Room: rm, Inspections: []models.InspectionNode{}}
			for _, i := range inspectionsByRoom[rm.ID] {
				in := models.InspectionNode{Inspection: i, Images: []models.InspectionImage{}}
				if imgs := imagesByInspection[i.ID]; imgs != nil {
					in.Images = imgs
				}
				rn.Inspections = append(rn.Inspections, in)
			}
			hn.Rooms = append(hn.Rooms, rn)
		}
		out = append(out, hn)
	}

	return out, nil
}
