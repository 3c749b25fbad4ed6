// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"sort"
)

// SlotCell is the participation count for one hour of one day column.
type SlotCell struct {
	Slot       string `json:"slot"` // canonical key within the column, e.g. "monday_2024-06-03_14"
	Hour       int    `json:"hour"`
	YesCount   int    `json:"yes_count"`
	MaybeCount int    `json:"maybe_count"`
}

// DayColumn is one day of the heatmap grid with its 24 hourly cells.
type DayColumn struct {
	Day   string     `json:"day"` // column key: weekday or weekday_date
	Date  string     `json:"date,omitempty"`
	Slots []SlotCell `json:"slots"`
}

// UserSlots is one entry of the per-user listing: who responded and
// which slots they picked. RSVP-only respondents appear with empty
// slot lists.
type UserSlots struct {
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name"`
	FreeSlots  []string `json:"free_slots"`
	MaybeSlots []string `json:"maybe_slots,omitempty"`
}

// Heatmap is the derived availability grid for one event. It is
// recomputed on every read and never persisted.
type Heatmap struct {
	Grid          []DayColumn `json:"grid"`
	MaxYesCount   int         `json:"max_yes_count"`
	MaxMaybeCount int         `json:"max_maybe_count"`
	UserResponses []UserSlots `json:"user_responses"`
}

// BuildHeatmap folds the canonical responses into per-slot participation
// counts over the given slot universe.
//
// Free slots and level-2 grid keys increment the yes count; maybe slots
// and level-1 grid keys increment the maybe count. Equivalent keys
// accumulate into the same bucket regardless of encoding: a legacy
// weekday-only key lands in every matching weekday column, a dated key
// only in its own column. The per-user listing is sorted by user ID so
// repeated aggregation of the same inputs yields identical output.
func BuildHeatmap(days []DaySlot, responses []*Response) *Heatmap {
	heatmap := &Heatmap{
		Grid: make([]DayColumn, 0, len(days)),
	}

	columns := make([]*[HoursPerDay]SlotCell, len(days))
	for i, day := range days {
		var cells [HoursPerDay]SlotCell
		for hour := 0; hour < HoursPerDay; hour++ {
			cells[hour] = SlotCell{
				Slot: SlotKey{Weekday: day.Weekday, Date: day.Date, Hour: hour}.String(),
				Hour: hour,
			}
		}
		columns[i] = &cells
	}

	accumulate := func(raw string, yes bool) {
		key, err := ParseSlotKey(raw)
		if err != nil {
			// Stored responses are normalized on write; an unparseable
			// key here is stale data and contributes nothing.
			return
		}
		for i, day := range days {
			if !key.MatchesDay(day) {
				continue
			}
			if yes {
				columns[i][key.Hour].YesCount++
			} else {
				columns[i][key.Hour].MaybeCount++
			}
		}
	}

	for _, response := range responses {
		// RSVP-only responses contribute nothing to the counts but
		// still appear in the per-user listing, with empty slot lists.
		for _, key := range response.FreeSlots {
			accumulate(key, true)
		}
		for _, key := range response.MaybeSlots {
			accumulate(key, false)
		}
		for key, level := range response.Grid {
			switch level {
			case LevelYes:
				accumulate(key, true)
			case LevelMaybe:
				accumulate(key, false)
			}
		}

		heatmap.UserResponses = append(heatmap.UserResponses, UserSlots{
			UserID:     response.UserID,
			UserName:   response.UserName,
			FreeSlots:  response.FreeSlots,
			MaybeSlots: response.MaybeSlots,
		})
	}

	sort.Slice(heatmap.UserResponses, func(i, j int) bool {
		return heatmap.UserResponses[i].UserID < heatmap.UserResponses[j].UserID
	})

	for i, day := range days {
		column := DayColumn{
			Day:   day.Key(),
			Date:  day.Date,
			Slots: columns[i][:],
		}
		heatmap.Grid = append(heatmap.Grid, column)

		for _, cell := range column.Slots {
			if cell.YesCount > heatmap.MaxYesCount {
				heatmap.MaxYesCount = cell.YesCount
			}
			if cell.MaybeCount > heatmap.MaxMaybeCount {
				heatmap.MaxMaybeCount = cell.MaybeCount
			}
		}
	}

	return heatmap
}
