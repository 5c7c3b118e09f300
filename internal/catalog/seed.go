package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/five82/cohort/internal/cohortapi"
)

type seedList struct {
	name        string
	description string
	kind        cohortapi.ListKind
	starred     bool
	size        int
}

var demoLists = []seedList{
	{"Admitted today", "Patients admitted in the last 24 hours", cohortapi.KindSystem, true, 14},
	{"Awaiting discharge", "Discharge order signed, still on ward", cohortapi.KindSystem, false, 6},
	{"Diabetes follow-up", "HbA1c above target at last visit", cohortapi.KindSystem, true, 23},
	{"Diabetes type 1", "Registered type 1 diabetes", cohortapi.KindSystem, false, 9},
	{"Hypertension review", "Three or more elevated readings", cohortapi.KindSystem, false, 31},
	{"Missed appointments", "No-show in the last 30 days", cohortapi.KindSystem, false, 12},
	{"Overdue immunisations", "", cohortapi.KindSystem, false, 48},
	{"Paediatric asthma", "", cohortapi.KindSystem, false, 17},
	{"Pending lab results", "", cohortapi.KindSystem, false, 5},
	{"Post-op day 1", "", cohortapi.KindSystem, false, 4},
	{"Renal clinic", "", cohortapi.KindSystem, false, 20},
	{"TB treatment", "Active treatment course", cohortapi.KindSystem, false, 8},
	{"My ward round", "Beds 1 to 12", cohortapi.KindUser, true, 12},
	{"Research cohort A", "Consented for study A", cohortapi.KindUser, false, 40},
	{"Research cohort B", "", cohortapi.KindUser, false, 0},
	{"Weekend handover", "", cohortapi.KindUser, true, 7},
}

// Seed fills an empty catalog with demo lists. It does nothing when any
// list already exists and reports how many lists it created.
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, l := range demoLists {
		created, err := c.Create(ctx, cohortapi.NewList{Name: l.name, Description: l.description, Kind: l.kind})
		if err != nil {
			return 0, err
		}
		if l.starred {
			if err := c.SetStarred(ctx, created.ID, true); err != nil {
				return 0, err
			}
		}
		members := make([]string, l.size)
		for i := range members {
			members[i] = uuid.NewString()
		}
		if err := c.AddMembers(ctx, created.ID, members...); err != nil {
			return 0, err
		}
	}
	return len(demoLists), nil
}
